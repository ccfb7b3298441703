package forms

import (
	"context"
	"strconv"
	"strings"

	"quill/internal/models"
	"quill/internal/validation"
)

// GroupLookup resolves a group by id. Implemented by the group repository.
type GroupLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Group, error)
}

// PostInput are the raw user-suppliable fields of the post form.
// Group arrives as the stringly form value of the group select; Image is the
// uploaded payload, if any.
type PostInput struct {
	Text      string
	Group     string
	Image     []byte
	ImageName string
}

// PostDelta is the prepared mutation for a post create or edit.
// ImageExt is only set when a new image payload was submitted.
type PostDelta struct {
	Text     string
	GroupID  *uint
	Image    []byte
	ImageExt string
}

// ValidatePost checks the post form fields and returns the prepared delta or
// field errors. The referenced group must exist; the image, if present, must
// sniff as a supported format.
func ValidatePost(ctx context.Context, groups GroupLookup, in PostInput) (*PostDelta, Errors) {
	errs := Errors{}
	delta := &PostDelta{Text: in.Text}

	if strings.TrimSpace(in.Text) == "" {
		errs.Add("text", "Text is required")
	}

	if g := strings.TrimSpace(in.Group); g != "" {
		id, err := strconv.ParseUint(g, 10, 32)
		if err != nil || id == 0 {
			errs.Add("group", "Select a valid group")
		} else if _, lookupErr := groups.GetByID(ctx, uint(id)); lookupErr != nil {
			if models.IsNotFound(lookupErr) {
				errs.Add("group", "Select a valid group")
			} else {
				errs.Add("group", "Group could not be verified")
			}
		} else {
			gid := uint(id)
			delta.GroupID = &gid
		}
	}

	if len(in.Image) > 0 {
		ext, err := validation.SniffImage(in.Image)
		if err != nil {
			errs.Add("image", err.Error())
		} else {
			delta.Image = in.Image
			delta.ImageExt = ext
		}
	}

	if !errs.Empty() {
		return nil, errs
	}
	return delta, nil
}
