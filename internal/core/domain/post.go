package domain

import "time"

// Post is a blog article written by a single author.
//
// Content is opaque to the backend: clients store an editor document
// (usually Editor.js blocks) and get the same value back.
type Post struct {
	ID                 string
	AuthorID           string
	Title              string
	Content            any
	PreviewImage       string
	PreviewTitle       string
	PreviewDescription string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PostPatch carries a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title              *string
	Content            any
	PreviewImage       *string
	PreviewTitle       *string
	PreviewDescription *string
}

// IsEmpty reports whether the patch would change nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.PreviewImage == nil &&
		p.PreviewTitle == nil && p.PreviewDescription == nil
}
