package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// LedgerHandler exposes the per-event notification ledger
type LedgerHandler struct {
	ledger services.LedgerReader
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledger services.LedgerReader) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// GetLedger handles GET /events/:id/ledger
func (h *LedgerHandler) GetLedger(c *gin.Context) {
	ledger, err := h.ledger.GetOrCreate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, ledger)
}
