package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IdentityHandler struct {
	identityUseCase usecase.IdentityUseCase
}

func NewIdentityHandler(identityUseCase usecase.IdentityUseCase) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token    string           `json:"token"`
	Identity *entity.Identity `json:"identity"`
}

type UpdateProfileRequest struct {
	Bio            *string       `json:"bio"`
	Website        *string       `json:"website"`
	IsPrivate      *bool         `json:"is_private"`
	IsProfessional *bool         `json:"is_professional"`
	Links          []entity.Link `json:"links"`
}

// Register godoc
// @Summary      Register a new identity
// @Description  Create an identity with its profile and the default role
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration data"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /register [post]
func (h *IdentityHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, token, err := h.identityUseCase.Register(req.Email, req.Username, req.Password, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrDuplicateEmail), errors.Is(err, entity.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Token:    token,
		Identity: identity,
	})
}

// Login godoc
// @Summary      Login
// @Description  Authenticate by email or username and return a JWT token
// @Tags         identity
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /login [post]
func (h *IdentityHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, token, err := h.identityUseCase.Login(req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, entity.ErrInactiveIdentity) {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": entity.ErrInvalidCredentials.Error()})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Token:    token,
		Identity: identity,
	})
}

// Me godoc
// @Summary      Get the current identity
// @Tags         identity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Identity
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *IdentityHandler) Me(c *gin.Context) {
	identityID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	identity, err := h.identityUseCase.Get(identityID.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identity not found"})
		return
	}

	c.JSON(http.StatusOK, identity)
}

// UpdateProfile godoc
// @Summary      Update the current identity's profile
// @Description  Update bio, website, visibility flags and typed links
// @Tags         identity
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body UpdateProfileRequest true "Profile fields"
// @Success      200  {object}  entity.Profile
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profile [patch]
func (h *IdentityHandler) UpdateProfile(c *gin.Context) {
	identityID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.identityUseCase.UpdateProfile(identityID.(string), usecase.ProfileUpdate{
		Bio:            req.Bio,
		Website:        req.Website,
		IsPrivate:      req.IsPrivate,
		IsProfessional: req.IsProfessional,
		Links:          req.Links,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar godoc
// @Summary      Upload an avatar image
// @Tags         identity
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar formData file true "Avatar image file"
// @Success      200  {object}  entity.Profile
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /avatar [post]
func (h *IdentityHandler) UploadAvatar(c *gin.Context) {
	identityID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".gif" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image format. Only jpg, jpeg, png, gif are allowed"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file"})
		return
	}
	defer src.Close()

	fileKey := fmt.Sprintf("avatars/%s/%s%s", identityID.(string), uuid.New().String(), ext)
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	profile, err := h.identityUseCase.UploadAvatar(identityID.(string), src, fileKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}
