package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/soelshaikh/feedback-portal/backend/internal/analytics"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback"
	"github.com/soelshaikh/feedback-portal/backend/internal/feedback/service"
)

// CreatedMessage is returned alongside a newly stored record.
const CreatedMessage = "Feedback submitted successfully"

// Options carries the optional middleware for the feedback routes.
type Options struct {
	// Admin guards the listing, lookup and analytics routes. Nil leaves them open.
	Admin gin.HandlerFunc
	// Submit runs before the create handler, typically a rate limiter.
	Submit gin.HandlerFunc
}

// RegisterFeedbackRoutes mounts the feedback and analytics API under /api.
// Errors are pushed with c.Error and rendered by middleware.ErrorHandler.
func RegisterFeedbackRoutes(r gin.IRouter, svc service.Service, stats *analytics.Service, opts Options) {
	api := r.Group("/api")
	api.POST("/feedback", with(opts.Submit, func(c *gin.Context) {
		var sub feedback.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return
		}
		rec, err := svc.Create(c.Request.Context(), sub)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": CreatedMessage, "feedback": rec})
	})...)

	api.GET("/feedback", with(opts.Admin, func(c *gin.Context) {
		q, err := feedback.ParseListQuery(c.Request.URL.Query())
		if err != nil {
			_ = c.Error(err)
			return
		}
		page, err := svc.List(c.Request.Context(), q)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})...)

	api.GET("/feedback/:id", with(opts.Admin, func(c *gin.Context) {
		rec, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, rec)
	})...)

	api.GET("/analytics", with(opts.Admin, func(c *gin.Context) {
		rep, err := stats.Report(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, rep)
	})...)

	api.GET("/analytics/choices", with(opts.Admin, func(c *gin.Context) {
		ch, err := stats.Choices(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"choices": ch})
	})...)

	api.GET("/questions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"questions": feedback.Questions})
	})
}

// with prepends mw to h when mw is set.
func with(mw gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	if mw == nil {
		return []gin.HandlerFunc{h}
	}
	return []gin.HandlerFunc{mw, h}
}
