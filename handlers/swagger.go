package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the feedback API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>feedback-portal Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "feedback-portal", "version": "v1.0.0" },
  "components": {
    "securitySchemes": { "bearer": { "type": "http", "scheme": "bearer" } },
    "schemas": {
      "Submission": {
        "type": "object",
        "required": ["name", "personType", "rating"],
        "properties": {
          "name": { "type": "string", "maxLength": 200 },
          "personType": { "type": "string", "enum": ["Customer", "Technician"] },
          "jobRole": { "type": "string" },
          "location": { "type": "string" },
          "rating": { "type": "number", "minimum": 0, "maximum": 5 },
          "comment": { "type": "string" },
          "answers": { "type": "object", "additionalProperties": { "oneOf": [ { "type": "string" }, { "type": "array", "items": { "type": "string" } } ] } }
        }
      },
      "Error": {
        "type": "object",
        "properties": { "type": {"type":"string"}, "message": {"type":"string"}, "details": {"type":"string"}, "code": {"type":"string"}, "retryable": {"type":"boolean"} }
      }
    }
  },
  "paths": {
    "/api/feedback": {
      "post": {
        "summary": "Submit feedback",
        "requestBody": { "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Submission" } } } },
        "responses": { "201": { "description": "stored record" }, "400": { "description": "validation error" }, "429": { "description": "rate limited" }, "503": { "description": "store unavailable" } }
      },
      "get": {
        "summary": "List feedback",
        "security": [ { "bearer": [] } ],
        "parameters": [
          { "name": "page", "in": "query", "schema": { "type": "integer", "default": 1 } },
          { "name": "limit", "in": "query", "schema": { "type": "integer", "default": 20, "maximum": 100 } },
          { "name": "search", "in": "query", "schema": { "type": "string" } },
          { "name": "personType", "in": "query", "schema": { "type": "string", "enum": ["Customer", "Technician"] } },
          { "name": "sortBy", "in": "query", "schema": { "type": "string", "enum": ["createdAt", "rating"] } },
          { "name": "sortOrder", "in": "query", "schema": { "type": "string", "enum": ["asc", "desc"] } },
          { "name": "from", "in": "query", "schema": { "type": "string", "format": "date" } },
          { "name": "to", "in": "query", "schema": { "type": "string", "format": "date" } }
        ],
        "responses": { "200": { "description": "{feedbacks, page, limit, total, pages}" }, "400": { "description": "invalid filter" } }
      }
    },
    "/api/feedback/{id}": {
      "get": {
        "summary": "Get feedback by id",
        "security": [ { "bearer": [] } ],
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": { "200": { "description": "record" }, "400": { "description": "invalid id" }, "404": { "description": "not found" } }
      }
    },
    "/api/feedback/export.csv": {
      "get": { "summary": "Download all feedback as CSV", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "text/csv" } } }
    },
    "/api/analytics": {
      "get": { "summary": "Summary, rating distribution and latest comments", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "{summary, distribution, latestComments}" } } }
    },
    "/api/analytics/choices": {
      "get": { "summary": "Option counts per choice question", "security": [ { "bearer": [] } ], "responses": { "200": { "description": "{choices}" } } }
    },
    "/api/questions": {
      "get": { "summary": "Survey question catalogue", "responses": { "200": { "description": "{questions}" } } }
    },
    "/api/exports": {
      "post": { "summary": "Upload a CSV snapshot to object storage", "security": [ { "bearer": [] } ], "responses": { "201": { "description": "export metadata with download url" }, "503": { "description": "object storage not configured" } } }
    },
    "/api/exports/{id}": {
      "get": { "summary": "Export metadata with a fresh download url", "security": [ { "bearer": [] } ], "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ], "responses": { "200": { "description": "export" }, "404": { "description": "not found" } } }
    },
    "/api/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "{status, timestamp}" } } } },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
