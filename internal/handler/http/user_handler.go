// File: internal/handler/http/user_handler.go
package http

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lolmatina/coincash-back/internal/service"
)

// maxDocumentSize bounds a single uploaded document.
const maxDocumentSize = 10 << 20

// UserHandler exposes profile reads and KYC document submission.
type UserHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewUserHandler(userService *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetMe handles GET /api/v1/users/me.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"user": user})
}

// GetUser handles GET /api/v1/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid user id", "invalid_request", h.logger)
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"user": user})
}

// SubmitDocuments handles POST /api/v1/users/documents. The request is a
// multipart form with three file parts: front, back, selfie.
func (h *UserHandler) SubmitDocuments(c *gin.Context) {
	email := c.GetString("email")

	front, err := h.readDocument(c, "front")
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, err.Error(), "invalid_request", h.logger)
		return
	}
	back, err := h.readDocument(c, "back")
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, err.Error(), "invalid_request", h.logger)
		return
	}
	selfie, err := h.readDocument(c, "selfie")
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, err.Error(), "invalid_request", h.logger)
		return
	}

	user, err := h.userService.SubmitDocuments(c.Request.Context(), email, front, back, selfie)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{
		"message": "Documents submitted for review",
		"user":    user,
	})
}

func (h *UserHandler) readDocument(c *gin.Context, field string) (service.DocumentUpload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return service.DocumentUpload{}, fmt.Errorf("missing %s document", field)
	}
	if fileHeader.Size > maxDocumentSize {
		return service.DocumentUpload{}, fmt.Errorf("%s document exceeds the size limit", field)
	}

	data, err := readAll(fileHeader)
	if err != nil {
		return service.DocumentUpload{}, fmt.Errorf("failed to read %s document", field)
	}

	return service.DocumentUpload{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	}, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
