package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/eventlottery-backend/internal/services"
)

// statusFor maps a service error kind to an HTTP status.
func statusFor(kind services.Kind) int {
	switch kind {
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindEmptyWaitlist:
		return http.StatusConflict
	case services.KindStorageUnavailable:
		return http.StatusServiceUnavailable
	case services.KindTimeout:
		return http.StatusGatewayTimeout
	case services.KindPartialFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error", "kind"} plus any extra fields.
func respondError(c *gin.Context, err error, extra gin.H) {
	_ = c.Error(err)
	kind := services.KindOf(err)
	body := gin.H{"error": err.Error(), "kind": kind}
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		body["error"] = "Internal server error"
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(statusFor(kind), body)
}
