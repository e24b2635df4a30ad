package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers the API docs:
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(r gin.IRouter) {
	r.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})
	r.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>dish-service API</title>
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
  "info": { "title": "dish-service", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Dish": {
        "type": "object",
        "properties": {
          "_id": { "type": "string", "description": "24-hex storage id" },
          "id": { "type": "integer", "format": "int64", "description": "sequential id" },
          "name": { "type": "string" },
          "price": { "type": "number" },
          "description": { "type": "string" },
          "image": { "type": "string" },
          "createdAt": { "type": "string", "format": "date-time" },
          "updatedAt": { "type": "string", "format": "date-time" }
        }
      },
      "NewDish": {
        "type": "object",
        "required": ["name", "price"],
        "properties": {
          "name": { "type": "string" },
          "price": { "oneOf": [ { "type": "number" }, { "type": "string" } ] },
          "description": { "type": "string" },
          "image": { "type": "string" }
        }
      },
      "Message": { "type": "object", "properties": { "message": { "type": "string" } } }
    }
  },
  "paths": {
    "/api/dishes": {
      "get": {
        "summary": "List all dishes",
        "responses": {
          "200": { "description": "dishes", "content": { "application/json": { "schema": { "type": "array", "items": { "$ref": "#/components/schemas/Dish" } } } } },
          "500": { "description": "storage failure" }
        }
      },
      "post": {
        "summary": "Create one dish or a batch of dishes",
        "requestBody": { "content": { "application/json": { "schema": { "oneOf": [ { "$ref": "#/components/schemas/NewDish" }, { "type": "array", "items": { "$ref": "#/components/schemas/NewDish" } } ] } } } },
        "responses": {
          "201": { "description": "created" },
          "400": { "description": "missing name or price, or no valid entries", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Message" } } } },
          "500": { "description": "storage failure" }
        }
      }
    },
    "/api/dishes/{id}": {
      "get": {
        "summary": "Get a dish by storage id or sequential id",
        "parameters": [ { "name": "id", "in": "path", "required": true, "schema": { "type": "string" } } ],
        "responses": {
          "200": { "description": "dish", "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Dish" } } } },
          "400": { "description": "malformed id" },
          "404": { "description": "not found" }
        }
      }
    },
    "/api/admin-login": {
      "post": {
        "summary": "Mock admin login, sets the session cookie",
        "requestBody": { "content": { "application/json": { "schema": { "type": "object", "properties": { "email": { "type": "string" }, "password": { "type": "string" } } } } } },
        "responses": { "200": { "description": "logged in" }, "401": { "description": "invalid credentials" }, "429": { "description": "rate limited" } }
      }
    },
    "/api/admin-session": {
      "get": { "summary": "Current admin session", "responses": { "200": { "description": "session" }, "401": { "description": "not authenticated" } } }
    },
    "/api/admin-logout": {
      "post": { "summary": "End the admin session", "responses": { "200": { "description": "logged out" }, "401": { "description": "not authenticated" } } }
    },
    "/health": {
      "get": { "summary": "Liveness", "responses": { "200": { "description": "ok" } } }
    },
    "/ready": {
      "get": { "summary": "Readiness (database reachable)", "responses": { "200": { "description": "ready" }, "503": { "description": "database unavailable" } } }
    }
  }
}`
