package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
	"github.com/soelshaikh/feedback-portal/backend/pkg/logger"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

// ErrorHandler renders the last error pushed with c.Error. Handlers only have
// to call c.Error and return.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		err := last.Err

		var appErr *apperrors.AppError
		switch {
		case errors.As(err, &appErr):
		case last.Type == gin.ErrorTypeBind:
			appErr = apperrors.ValidationFailed("Failed to bind request", err.Error())
		default:
			appErr = apperrors.Internal("Internal Server Error", err)
		}

		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		fields := []interface{}{
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"status", status,
			"error_type", string(appErr.Type),
			"request_id", c.GetString(RequestIDKey),
			"error", err,
		}
		if status >= http.StatusInternalServerError {
			logger.Errorw("request failed", fields...)
		} else {
			logger.Warnw("request rejected", fields...)
		}

		resp := ErrorResponse{
			Type:      string(appErr.Type),
			Message:   appErr.Message,
			Code:      strconv.Itoa(status),
			Retryable: appErr.Retryable,
		}
		if appErr.Type != apperrors.ServerError || gin.IsDebugging() {
			resp.Details = appErr.Detail
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(status, resp)
	}
}
