// Package models defines the domain records shared between the API client,
// the playback reconciler and the UI.
//
// All records are plain values produced fresh per API call. Identity is the
// upstream id: two records with equal IDs describe the same entity even when
// display fields differ between refreshes.
package models
