package shared

import "testing"

func TestGenerateID(t *testing.T) {
	a := GenerateID()
	b := GenerateID()

	if a == "" || b == "" {
		t.Fatal("expected non-empty ids")
	}
	if a == b {
		t.Errorf("expected unique ids, got %s twice", a)
	}
	if len(a) != 36 {
		t.Errorf("expected uuid-shaped id, got %s", a)
	}
}

func TestNewLogger(t *testing.T) {
	if l := NewLogger(nil); l == nil {
		t.Fatal("expected logger")
	}
}
