package note

import (
	"strings"

	"github.com/studybuddy/backend/internal/domain"
)

// CreateNoteInput carries a new note's fields.
type CreateNoteInput struct {
	Title   string
	Content string
	Color   string
	Tags    []string
	Pinned  bool
}

// Validate checks a CreateNoteInput. A note needs a title or content;
// everything else is optional.
func (in CreateNoteInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == "" {
		return domain.NewValidationError("note", "title or content is required")
	}
	return validateTags(in.Tags)
}

// UpdateNoteInput carries partial note updates. Nil means "leave as is".
type UpdateNoteInput struct {
	Title   *string
	Content *string
	Color   *string
	Tags    *[]string
	Pinned  *bool
}

// Validate checks an UpdateNoteInput.
func (in UpdateNoteInput) Validate() error {
	if in.Tags != nil {
		return validateTags(*in.Tags)
	}
	return nil
}

func validateTags(tags []string) error {
	if len(tags) > MaxTags {
		return domain.NewValidationError("tags", "too many tags")
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return domain.NewValidationError("tags", "empty tag")
		}
		if len(tag) > MaxTagLength {
			return domain.NewValidationError("tags", "tag too long")
		}
	}
	return nil
}
