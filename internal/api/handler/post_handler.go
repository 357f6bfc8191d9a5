package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/ports"
)

const (
	msgPostPublished = "Success! Your post has been published"
	msgPostUpdated   = "Success! Your post has been updated"
)

type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List returns every post, newest first.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive search on title and content"
// @Success      200  {array}   postResponse
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	posts, err := h.service.ListPosts(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return serverError(err, "Error! Unable to fetch posts from server")
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Dashboard returns the caller's own posts, newest first.
//
// @Summary      List my posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/dashboard [get]
func (h *PostHandler) Dashboard(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	posts, err := h.service.ListByAuthor(c.Request().Context(), userID)
	if err != nil {
		return serverError(err, "Error! Unable to fetch posts from server")
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Get returns a single post.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post ID"
// @Success      200  {object}  postResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.service.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serverError(err, "Error! Unable to fetch post from server")
	}
	return c.JSON(http.StatusOK, toPostResponse(post))
}

// Create publishes a post authored by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	_, err = h.service.CreatePost(c.Request().Context(), ports.CreatePostInput{
		AuthorID:           userID,
		Title:              req.Title,
		Content:            req.Content,
		PreviewImage:       req.PreviewImage,
		PreviewTitle:       req.PreviewTitle,
		PreviewDescription: req.PreviewDescription,
	})
	if err != nil {
		return serverError(err, "Error! Unable to publish your post")
	}

	return c.JSON(http.StatusCreated, successResponse{Success: msgPostPublished})
}

// Update changes the provided fields of a post.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post ID"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      200   {object}  successResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.UpdatePost(c.Request().Context(), ports.UpdatePostInput{
		ID:       c.Param("id"),
		CallerID: userID,
		Patch:    req.toPatch(),
	})
	if err != nil {
		return serverError(err, "Error! Unable to update your post")
	}

	return c.JSON(http.StatusOK, successResponse{Success: msgPostUpdated})
}

// Delete removes a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeletePost(c.Request().Context(), c.Param("id"), userID); err != nil {
		return serverError(err, "Error! Unable to delete your post")
	}
	return c.NoContent(http.StatusNoContent)
}
