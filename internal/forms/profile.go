package forms

import "quill/internal/validation"

// ProfileInput are the raw user-suppliable fields of the profile form.
type ProfileInput struct {
	Bio   string
	Image []byte
}

// ProfileDelta is the prepared mutation for a profile create or edit.
type ProfileDelta struct {
	Bio      string
	Image    []byte
	ImageExt string
}

// ValidateProfile checks the profile form fields. Both fields are optional;
// an image, if present, must sniff as a supported format.
func ValidateProfile(in ProfileInput) (*ProfileDelta, Errors) {
	errs := Errors{}
	delta := &ProfileDelta{Bio: in.Bio}

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
