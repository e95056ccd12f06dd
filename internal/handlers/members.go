// members.go handles team member HTTP endpoints (TP-33).
//
// POST   /api/v1/members            — Create a member
// GET    /api/v1/members            — List members
// GET    /api/v1/members/:id        — Get one member
// PATCH  /api/v1/members/:id        — Update name/email
// DELETE /api/v1/members/:id        — Remove a member
// POST   /api/v1/members/:id/avatar — Upload an avatar image
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
)

// maxAvatarSize is the max upload size for avatar images (5MB).
const maxAvatarSize = 5 << 20

// CreateMember creates a new team member.
// POST /api/v1/members
//
// Member names are unique (case-insensitive) because report uploads are
// matched to members by participant name.
func (h *Handler) CreateMember(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "name is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if existing, err := h.DB.GetMemberByName(c.Request.Context(), req.Name); err == nil && existing != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "name_taken",
			Message: "A member with this name already exists",
			Code:    http.StatusConflict,
		})
		return
	}

	m := &models.Member{Name: req.Name}
	if req.Email != "" {
		m.Email = &req.Email
	}

	if err := h.DB.CreateMember(c.Request.Context(), m); err != nil {
		log.Printf("❌ Failed to create member: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create member",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusCreated, m)
}

// GetMember retrieves a single member by ID.
// GET /api/v1/members/:id
func (h *Handler) GetMember(c *gin.Context) {
	id := c.Param("id")

	m, err := h.DB.GetMember(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Member not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, m)
}

// ListMembers returns a filtered, paginated list of members.
// GET /api/v1/members
func (h *Handler) ListMembers(c *gin.Context) {
	var params models.MemberListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid query parameters",
			Code:    http.StatusBadRequest,
		})
		return
	}

	members, total, err := h.DB.ListMembers(c.Request.Context(), params)
	if err != nil {
		log.Printf("❌ Failed to list members: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list members",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if members == nil {
		members = []models.Member{}
	}

	perPage := params.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	c.JSON(http.StatusOK, models.PaginatedResponse[models.Member]{
		Data:       members,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// UpdateMember changes a member's name or email.
// PATCH /api/v1/members/:id
func (h *Handler) UpdateMember(c *gin.Context) {
	id := c.Param("id")

	m, err := h.DB.GetMember(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Member not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
			Code:    http.StatusBadRequest,
		})
		return
	}

	if req.Name != "" && !strings.EqualFold(req.Name, m.Name) {
		if existing, err := h.DB.GetMemberByName(c.Request.Context(), req.Name); err == nil && existing != nil {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "name_taken",
				Message: "A member with this name already exists",
				Code:    http.StatusConflict,
			})
			return
		}
		m.Name = req.Name
	}
	if req.Email != "" {
		m.Email = &req.Email
	}

	if err := h.DB.UpdateMember(c.Request.Context(), m); err != nil {
		log.Printf("❌ Failed to update member: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to update member",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMember removes a member.
// DELETE /api/v1/members/:id
func (h *Handler) DeleteMember(c *gin.Context) {
	id := c.Param("id")

	m, err := h.DB.GetMember(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Member not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if err := h.DB.DeleteMember(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to delete member",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Best-effort cleanup of the stored avatar.
	if h.Store != nil && m.AvatarKey != nil {
		if err := h.Store.Delete(c.Request.Context(), *m.AvatarKey); err != nil {
			log.Printf("⚠️  Failed to delete avatar %s: %v", *m.AvatarKey, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
}

// UploadAvatar stores an avatar image for a member.
// POST /api/v1/members/:id/avatar
//
// Accepts a multipart upload with field name "file". PNG, JPEG, and
// WebP up to 5MB.
func (h *Handler) UploadAvatar(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "storage_unavailable",
			Message: "Object storage is not configured; avatar uploads are disabled",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	id := c.Param("id")
	m, err := h.DB.GetMember(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Member not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No image provided. Upload a file with the field name 'file'. Max size: 5MB.",
			Code:    http.StatusBadRequest,
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentTypes := map[string]string{
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".webp": "image/webp",
	}
	contentType, ok := contentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported image format '%s'. Use .png, .jpg, or .webp.", ext),
			Code:    http.StatusBadRequest,
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return
	}

	avatarKey := "avatars/" + uuid.New().String() + ext
	if err := h.Store.Upload(c.Request.Context(), avatarKey, data, contentType); err != nil {
		log.Printf("❌ Failed to store avatar: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to store avatar",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	oldKey := m.AvatarKey
	m.AvatarKey = &avatarKey
	if err := h.DB.UpdateMember(c.Request.Context(), m); err != nil {
		log.Printf("❌ Failed to save avatar key: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to save avatar",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if oldKey != nil {
		if err := h.Store.Delete(c.Request.Context(), *oldKey); err != nil {
			log.Printf("⚠️  Failed to delete previous avatar %s: %v", *oldKey, err)
		}
	}

	c.JSON(http.StatusOK, m)
}
