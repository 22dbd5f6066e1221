// File: internal/handler/http/manager_handler.go
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lolmatina/coincash-back/internal/domain/models"
	"github.com/lolmatina/coincash-back/internal/service"
)

// CreateManagerRequest is the payload for POST /api/v1/managers.
type CreateManagerRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=50"`
	TelegramChatID string `json:"telegram_chat_id" binding:"required"`
}

// ManagerHandler exposes the manager registry and the moderation queue.
type ManagerHandler struct {
	managerService *service.ManagerService
	logger         *zap.Logger
}

func NewManagerHandler(managerService *service.ManagerService, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{
		managerService: managerService,
		logger:         logger,
	}
}

// CreateManager handles POST /api/v1/managers.
func (h *ManagerHandler) CreateManager(c *gin.Context) {
	var req CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, err.Error(), "invalid_request", h.logger)
		return
	}

	manager, err := h.managerService.CreateManager(c.Request.Context(), models.CreateManagerParams{
		Name:           req.Name,
		TelegramChatID: req.TelegramChatID,
	})
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusCreated, gin.H{"manager": manager})
}

// ListManagers handles GET /api/v1/managers.
func (h *ManagerHandler) ListManagers(c *gin.Context) {
	managers, err := h.managerService.ListManagers(c.Request.Context())
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"managers": managers})
}

// ModerationQueue handles GET /api/v1/managers/queue: users awaiting review,
// oldest first.
func (h *ManagerHandler) ModerationQueue(c *gin.Context) {
	users, err := h.managerService.ModerationQueue(c.Request.Context())
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"users": users})
}

// UsersWithDocuments handles GET /api/v1/managers/submissions.
func (h *ManagerHandler) UsersWithDocuments(c *gin.Context) {
	users, err := h.managerService.UsersWithDocuments(c.Request.Context())
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{"users": users})
}

// ApproveDocuments handles POST /api/v1/managers/documents/:id/approve.
func (h *ManagerHandler) ApproveDocuments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid user id", "invalid_request", h.logger)
		return
	}

	user, err := h.managerService.ApproveDocuments(c.Request.Context(), id)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{
		"message": "Documents approved",
		"user":    user,
	})
}

// DenyDocuments handles POST /api/v1/managers/documents/:id/deny.
func (h *ManagerHandler) DenyDocuments(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondWithError(c, http.StatusBadRequest, "invalid user id", "invalid_request", h.logger)
		return
	}

	user, err := h.managerService.DenyDocuments(c.Request.Context(), id)
	if err != nil {
		RespondWithDomainError(c, err, h.logger)
		return
	}

	RespondWithData(c, http.StatusOK, gin.H{
		"message": "Documents denied",
		"user":    user,
	})
}
