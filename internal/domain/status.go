package domain

import "strings"

// Status is the lifecycle flag carried in a document header.
type Status string

const (
	// StatusActive marks a project that is still maintained.
	StatusActive Status = "active"
	// StatusDraft marks content that is still being written.
	StatusDraft Status = "draft"
	// StatusPublished marks content available to readers.
	StatusPublished Status = "published"
	// StatusArchived marks content kept for history.
	StatusArchived Status = "archived"
)

// ParseStatus normalises a header value, falling back to def when the value
// is blank. Unknown values are kept verbatim in lower case.
func ParseStatus(value string, def Status) Status {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return def
	}
	return Status(trimmed)
}

// Normalize trims and lower-cases s.
func (s Status) Normalize() Status {
	return Status(strings.ToLower(strings.TrimSpace(string(s))))
}

// Known reports whether s is one of the declared statuses.
func (s Status) Known() bool {
	switch s {
	case StatusActive, StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}
