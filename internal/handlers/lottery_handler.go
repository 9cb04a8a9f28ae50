package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/models"
	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// LotteryHandler triggers lottery runs
type LotteryHandler struct {
	lottery services.LotteryRunner
}

// NewLotteryHandler creates a new LotteryHandler
func NewLotteryHandler(lottery services.LotteryRunner) *LotteryHandler {
	return &LotteryHandler{lottery: lottery}
}

// RunLotteryRequest is the body of POST /events/:id/lottery. Count 0 uses the event default.
type RunLotteryRequest struct {
	Count          int    `json:"count" binding:"min=0"`
	EventName      string `json:"eventName"`
	ExcludeInvited bool   `json:"excludeInvited"`
}

// RetryNotificationRequest is the body of the retry endpoints. Retry-winners reads
// Winners and retry-losers reads Losers, both as returned in a failed run's report.
type RetryNotificationRequest struct {
	Winners   []string `json:"winners"`
	Losers    []string `json:"losers"`
	EventName string   `json:"eventName"`
}

// RunLottery handles POST /events/:id/lottery
func (h *LotteryHandler) RunLottery(c *gin.Context) {
	var request RunLotteryRequest
	// An empty body is a valid trigger.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	report, err := h.lottery.RunLottery(c.Request.Context(), &models.LotteryRequest{
		EventID:        c.Param("id"),
		EventName:      request.EventName,
		RequestedCount: request.Count,
		ExcludeInvited: request.ExcludeInvited,
	})
	if err != nil {
		// The report carries winners and losers so a partial failure can be retried.
		respondError(c, err, gin.H{"report": report})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"winnerCount": report.WinnerCount,
		"runId":       report.RunID,
		"state":       report.State,
		"winners":     report.Winners,
		"losers":      report.Losers,
		"log":         report.Log,
	})
}

// RetryWinners handles POST /events/:id/lottery/retry-winners
func (h *LotteryHandler) RetryWinners(c *gin.Context) {
	h.retry(c, func(r *RetryNotificationRequest) []string { return r.Winners }, h.lottery.RetryWinnerNotification)
}

// RetryLosers handles POST /events/:id/lottery/retry-losers
func (h *LotteryHandler) RetryLosers(c *gin.Context) {
	h.retry(c, func(r *RetryNotificationRequest) []string { return r.Losers }, h.lottery.RetryLoserNotification)
}

type retryFunc func(ctx context.Context, eventID, eventName string, entrants []string) (*models.Notification, error)

func (h *LotteryHandler) retry(c *gin.Context, recipients func(*RetryNotificationRequest) []string, send retryFunc) {
	var request RetryNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entrants := recipients(&request)
	if len(entrants) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recipients to notify"})
		return
	}
	notification, err := send(c.Request.Context(), c.Param("id"), request.EventName, entrants)
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent", "notification": notification})
}
