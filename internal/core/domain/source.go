package domain

// SourceTag identifies where a knowledge-base document came from.
// Documents themselves live on the backend; the client only references
// them by title and source tag.
type SourceTag string

const (
	// SourceUser marks documents the user uploaded directly.
	SourceUser SourceTag = "user"

	// SourceWikipedia marks documents imported from Wikipedia.
	SourceWikipedia SourceTag = "wikipedia"
)

// AllSourceTags returns the set of valid source tags in display order.
func AllSourceTags() []SourceTag {
	return []SourceTag{SourceUser, SourceWikipedia}
}

// IsValid reports whether the tag is one of the known source tags.
func (t SourceTag) IsValid() bool {
	switch t {
	case SourceUser, SourceWikipedia:
		return true
	default:
		return false
	}
}

// Description returns a human-readable label for the tag.
func (t SourceTag) Description() string {
	switch t {
	case SourceUser:
		return "User"
	case SourceWikipedia:
		return "Wikipedia"
	default:
		return string(t)
	}
}
