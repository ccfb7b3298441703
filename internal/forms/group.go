package forms

import (
	"context"
	"strings"

	"quill/internal/validation"
)

// SlugChecker reports whether a group slug is already taken. Implemented by
// the group repository.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// GroupInput are the raw user-suppliable fields of the group form.
type GroupInput struct {
	Title       string
	Slug        string
	Description string
}

// GroupDelta is the prepared mutation for a group create.
type GroupDelta struct {
	Title       string
	Slug        string
	Description string
}

// ValidateGroup checks the group form fields. Slugs are lowercased before the
// uniqueness check so lookups stay case-insensitive.
func ValidateGroup(ctx context.Context, slugs SlugChecker, in GroupInput) (*GroupDelta, Errors) {
	errs := Errors{}

	if strings.TrimSpace(in.Title) == "" {
		errs.Add("title", "Title is required")
	}

	slug := strings.ToLower(strings.TrimSpace(in.Slug))
	if slug == "" {
		errs.Add("slug", "Slug is required")
	} else if err := validation.ValidateGroupSlug(slug); err != nil {
		errs.Add("slug", err.Error())
	} else {
		taken, err := slugs.SlugExists(ctx, slug)
		if err != nil {
			errs.Add("slug", "Slug could not be verified")
		} else if taken {
			errs.Add("slug", "A group with this slug already exists")
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return &GroupDelta{
		Title:       in.Title,
		Slug:        slug,
		Description: in.Description,
	}, nil
}
