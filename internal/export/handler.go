package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/soelshaikh/feedback-portal/backend/pkg/middleware"
)

// RegisterExportRoutes mounts the CSV download and snapshot routes. All of
// them are administrative; admin may be nil when auth is not configured.
func RegisterExportRoutes(r gin.IRouter, svc *Service, admin gin.HandlerFunc) {
	api := r.Group("/api")
	if admin != nil {
		api.Use(admin)
	}

	api.GET("/feedback/export.csv", func(c *gin.Context) {
		name := fmt.Sprintf("feedback-%s.csv", time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Type", contentType+"; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		c.Status(http.StatusOK)
		if _, err := svc.WriteCSV(c.Request.Context(), c.Writer); err != nil {
			if !c.Writer.Written() {
				c.Writer.Header().Del("Content-Type")
				c.Writer.Header().Del("Content-Disposition")
			}
			// once bytes are out the truncated body is all the client gets
			_ = c.Error(err)
		}
	})

	api.POST("/exports", func(c *gin.Context) {
		e, err := svc.Snapshot(c.Request.Context(), subject(c))
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, e)
	})

	api.GET("/exports/:id", func(c *gin.Context) {
		e, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, e)
	})
}

func subject(c *gin.Context) string {
	if v, ok := c.Get(middleware.ClaimsKey); ok {
		if cm, ok := v.(map[string]interface{}); ok {
			if sub, ok := cm["sub"].(string); ok {
				return sub
			}
		}
	}
	return ""
}
