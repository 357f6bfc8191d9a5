package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/domain"
	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	msgDraftSaved     = "Image saved to draft successfully"
	msgImagePublished = "Image published successfully"
)

type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

type publishImageRequest struct {
	ImageURL string `json:"imageURL" validate:"required,url"`
}

// imageFile is the shape the Editor.js image tool expects back.
type imageFile struct {
	URL string `json:"url"`
}

type imageResponse struct {
	Message string    `json:"message"`
	Success int       `json:"success"`
	File    imageFile `json:"file"`
}

// UploadDraft stores an uploaded image as a WebP draft.
//
// @Summary      Upload an image draft
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG or WebP image"
// @Success      200    {object}  imageResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      413    {object}  map[string]string
// @Router       /uploadImage/imageByFile [post]
func (h *ImageHandler) UploadDraft(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return domain.ErrImageRequired
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer src.Close()

	url, err := h.service.UploadDraft(c.Request().Context(), ports.UploadImageInput{
		Filename: fh.Filename,
		Body:     src,
	})
	if err != nil {
		return imageError(err)
	}

	return c.JSON(http.StatusOK, imageResponse{Message: msgDraftSaved, Success: 1, File: imageFile{URL: url}})
}

// Publish moves a draft image to its published location.
//
// @Summary      Publish an image draft
// @Tags         images
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      publishImageRequest  true  "Draft URL"
// @Success      200   {object}  imageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /uploadImage/imageByFilePublished [post]
func (h *ImageHandler) Publish(c echo.Context) error {
	var req publishImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return domain.ErrImageURLInvalid
	}

	url, err := h.service.Publish(c.Request().Context(), req.ImageURL)
	if err != nil {
		return imageError(err)
	}

	return c.JSON(http.StatusOK, imageResponse{Message: msgImagePublished, Success: 1, File: imageFile{URL: url}})
}

// imageError reports storage and codec failures as 400 with their message.
func imageError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
}
