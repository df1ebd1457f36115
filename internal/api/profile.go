package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psmolich79/healthy-meal/internal/service"
	"github.com/psmolich79/healthy-meal/internal/types"
)

// maxPictureBytes caps profile picture uploads at 5 MiB.
const maxPictureBytes = 5 << 20

type ProfileHandler struct {
	profileService service.IProfileService
	imageService   *service.ImageService
}

func NewProfileHandler(profileService service.IProfileService, imageService *service.ImageService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		imageService:   imageService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profiles := router.Group("/profiles")
	{
		profiles.GET("/me", h.GetProfile)
		profiles.PUT("/me", h.UpdateProfile)
		profiles.DELETE("/me", h.DeleteProfile)
		profiles.POST("/me/picture", h.UploadPicture)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	profile, err := h.profileService.UpdatePreferences(c.Request.Context(), userID, req.Preferences)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.ScheduleDeletion(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "picture uploads are not configured"})
		return
	}

	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": "picture file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPictureBytes+1))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(data) > maxPictureBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": "picture exceeds 5MB limit"})
		return
	}

	url, err := h.imageService.UploadProfilePicture(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err)
		return
	}

	profile, err := h.profileService.SetPictureURL(c.Request.Context(), userID, url)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
