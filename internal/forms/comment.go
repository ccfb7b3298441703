package forms

import "strings"

// CommentInput are the raw user-suppliable fields of the comment form.
type CommentInput struct {
	Text string
}

// CommentDelta is the prepared mutation for a comment create.
type CommentDelta struct {
	Text string
}

// ValidateComment checks the comment form fields.
func ValidateComment(in CommentInput) (*CommentDelta, Errors) {
	errs := Errors{}
	if strings.TrimSpace(in.Text) == "" {
		errs.Add("text", "Text is required")
	}
	if !errs.Empty() {
		return nil, errs
	}
	return &CommentDelta{Text: in.Text}, nil
}
