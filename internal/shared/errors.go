package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthRequired = fmt.Errorf("no usable session cookie")

	// API errors
	ErrNetwork  = fmt.Errorf("network request failed")
	ErrProtocol = fmt.Errorf("unexpected API response")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
