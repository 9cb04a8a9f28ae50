package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/middleware"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications services.NotificationReader
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications services.NotificationReader) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListForEvent handles GET /events/:id/notifications
func (h *NotificationHandler) ListForEvent(c *gin.Context) {
	notifications, err := h.notifications.ListForEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// ListMine handles GET /me/notifications
func (h *NotificationHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// Parse pagination parameters
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	notifications, err := h.notifications.ListForEntrant(c.Request.Context(), identity.UserID, page, limit)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
