package handler

import (
	"time"

	"github.com/inkwell/blog-api/internal/core/domain"
)

// createPostRequest is the body of POST /api/posts. postContent is stored
// verbatim, typically an Editor.js document.
type createPostRequest struct {
	Title              string `json:"postTitle" validate:"required"`
	Content            any    `json:"postContent" validate:"required"`
	PreviewImage       string `json:"postPreviewImage" validate:"required"`
	PreviewTitle       string `json:"postPreviewTitle" validate:"required"`
	PreviewDescription string `json:"postPreviewDescription" validate:"required"`
}

// updatePostRequest carries only the fields to change. The author cannot
// be changed, so postAuthorId is ignored if sent.
type updatePostRequest struct {
	Title              *string `json:"postTitle"`
	Content            any     `json:"postContent"`
	PreviewImage       *string `json:"postPreviewImage"`
	PreviewTitle       *string `json:"postPreviewTitle"`
	PreviewDescription *string `json:"postPreviewDescription"`
}

func (r updatePostRequest) toPatch() domain.PostPatch {
	return domain.PostPatch{
		Title:              r.Title,
		Content:            r.Content,
		PreviewImage:       r.PreviewImage,
		PreviewTitle:       r.PreviewTitle,
		PreviewDescription: r.PreviewDescription,
	}
}

type postResponse struct {
	ID                 string    `json:"_id"`
	AuthorID           string    `json:"postAuthorId"`
	Title              string    `json:"postTitle"`
	Content            any       `json:"postContent"`
	PreviewImage       string    `json:"postPreviewImage"`
	PreviewTitle       string    `json:"postPreviewTitle"`
	PreviewDescription string    `json:"postPreviewDescription"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type successResponse struct {
	Success string `json:"success"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:                 p.ID,
		AuthorID:           p.AuthorID,
		Title:              p.Title,
		Content:            p.Content,
		PreviewImage:       p.PreviewImage,
		PreviewTitle:       p.PreviewTitle,
		PreviewDescription: p.PreviewDescription,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
