package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/blog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
	Name     string `json:"userName"`
}

type registerResponse struct {
	Email string `json:"userEmail"`
	Name  string `json:"userName"`
}

type loginRequest struct {
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Name        string `json:"userName"`
	// ExpiresIn is the token lifetime in milliseconds.
	ExpiresIn int64 `json:"expiresIn"`
}

type userResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"userName"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return serverError(err, "Error! Unable to register user")
	}

	return c.JSON(http.StatusCreated, registerResponse{Email: user.Email, Name: user.Name})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serverError(err, "Error! Unable to log in")
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: res.AccessToken,
		UserID:      res.User.ID,
		Name:        res.User.Name,
		ExpiresIn:   res.ExpiresIn.Milliseconds(),
	})
}

// GetUser returns the public profile of a user.
//
// @Summary      Get a user
// @Tags         auth
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /auth/user/{id} [get]
func (h *AuthHandler) GetUser(c echo.Context) error {
	user, err := h.authService.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serverError(err, "Error! Unable to fetch user")
	}
	return c.JSON(http.StatusOK, userResponse{UserID: user.ID, Name: user.Name})
}
