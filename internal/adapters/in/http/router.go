package http

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the API under BasePath with request validation against
// doc, and the Swagger UI under /swagger/.
func Register(e *echo.Echo, server ServerInterface, doc *openapi3.T) error {
	if err := RegisterSwaggerDoc(doc); err != nil {
		return err
	}
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BasePath, middleware.Recover(), RequestValidator(doc))
	RegisterHandlers(api, server)
	return nil
}
