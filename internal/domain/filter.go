package domain

// NoteFilter defines optional note list filters. Ordering is fixed:
// pinned notes first, newest-created first within each group.
type NoteFilter struct {
	// Tag filters notes carrying the given tag.
	Tag *string

	// Color filters notes with the given color tag.
	Color *string

	// Pinned filters notes by pinned state.
	Pinned *bool
}
