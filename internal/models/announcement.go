package models

import (
	"strings"
)

// Announcement is a single corporate announcement submitted for
// classification. Immutable once created: Normalized is derived from Raw
// in NewAnnouncement and never mutated afterwards.
type Announcement struct {
	Raw        string `json:"raw"`
	Source     string `json:"source,omitempty"`
	Normalized string `json:"normalized"`
}

// NewAnnouncement creates an announcement from raw text, lowercasing and
// collapsing whitespace into the Normalized field.
func NewAnnouncement(raw, source string) *Announcement {
	return &Announcement{
		Raw:        raw,
		Source:     source,
		Normalized: NormalizeText(raw),
	}
}

// NormalizeText lowercases text and collapses all whitespace runs to a
// single space.
func NormalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
