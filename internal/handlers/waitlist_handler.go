package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/middleware"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// WaitlistHandler lets the caller join or leave an event's waitlist
type WaitlistHandler struct {
	waitlists services.WaitlistManager
}

// NewWaitlistHandler creates a new WaitlistHandler
func NewWaitlistHandler(waitlists services.WaitlistManager) *WaitlistHandler {
	return &WaitlistHandler{waitlists: waitlists}
}

// Join handles POST /events/:id/waitlist
func (h *WaitlistHandler) Join(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	eventID := c.Param("id")
	if err := h.waitlists.Join(c.Request.Context(), eventID, identity.UserID); err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Joined waitlist", "eventId": eventID})
}

// Leave handles DELETE /events/:id/waitlist
func (h *WaitlistHandler) Leave(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	eventID := c.Param("id")
	if err := h.waitlists.Leave(c.Request.Context(), eventID, identity.UserID); err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left waitlist", "eventId": eventID})
}

// GetWaitlist handles GET /events/:id/waitlist
func (h *WaitlistHandler) GetWaitlist(c *gin.Context) {
	eventID := c.Param("id")
	waitlist, err := h.waitlists.GetWaitlist(c.Request.Context(), eventID)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventId": eventID, "waitlist": waitlist, "count": len(waitlist)})
}
