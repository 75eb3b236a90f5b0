package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/retail-sales-dashboard/internal/middleware"
)

// SwaggerSpecPath is resolved against the working directory.
var SwaggerSpecPath = "docs/swagger.json"

// SetupSwagger mounts the sales API docs under /swagger: the OpenAPI document
// at doc.json and the UI page at the root or index.html.
func SetupSwagger(router *gin.Engine) {
	router.GET("/swagger/*any", func(c *gin.Context) {
		switch strings.TrimPrefix(c.Param("any"), "/") {
		case "doc.json":
			serveSalesAPIDoc(c)
		case "", "index.html":
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(salesDocsPage))
		default:
			c.JSON(http.StatusNotFound, middleware.ErrorResponse{Message: "Not Found"})
		}
	})
}

func serveSalesAPIDoc(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(SwaggerSpecPath)
}

const salesDocsPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Retail Sales Dashboard - API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css">
</head>
<body>
  <div id="sales-api-docs"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({
      url: '/swagger/doc.json',
      dom_id: '#sales-api-docs',
      deepLinking: true,
      presets: [SwaggerUIBundle.presets.apis]
    });
  </script>
</body>
</html>`
