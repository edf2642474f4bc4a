package http

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// BasePath is where the API routes are mounted.
const BasePath = "/api/v1"

//go:embed openapi.yml
var openAPIDocument []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerSwaggerOnce sync.Once

// RegisterSwaggerDoc publishes doc to swag so that echo-swagger serves it as
// doc.json. Only the first call registers.
func RegisterSwaggerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	registerSwaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: string(data)})
	})
	return nil
}

// RequestValidator checks each request against the operation of doc that
// matches the echo route. Routes missing from doc are passed through.
func RequestValidator(doc *openapi3.T) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			template := openAPIPath(strings.TrimPrefix(c.Path(), BasePath))
			pathItem := doc.Paths.Find(template)
			if pathItem == nil {
				return next(c)
			}
			method := c.Request().Method
			operation := pathItem.GetOperation(method)
			if operation == nil {
				return next(c)
			}

			pathParams := make(map[string]string, len(c.ParamNames()))
			values := c.ParamValues()
			for i, name := range c.ParamNames() {
				if i < len(values) {
					pathParams[name] = values[i]
				}
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    c.Request(),
				PathParams: pathParams,
				Route: &routers.Route{
					Spec:      doc,
					Path:      template,
					PathItem:  pathItem,
					Method:    method,
					Operation: operation,
				},
				Options: &openapi3filter.Options{MultiError: true},
			}
			if err := openapi3filter.ValidateRequest(c.Request().Context(), input); err != nil {
				return c.JSON(http.StatusBadRequest, Error{
					Code:    http.StatusBadRequest,
					Message: validationMessage(err),
				})
			}
			return next(c)
		}
	}
}

// openAPIPath turns "/offers/:id/cancel" into "/offers/{id}/cancel".
func openAPIPath(echoPath string) string {
	segments := strings.Split(echoPath, "/")
	for i, s := range segments {
		if strings.HasPrefix(s, ":") {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func validationMessage(err error) string {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		parts := make([]string, 0, len(multi))
		for _, e := range multi {
			parts = append(parts, validationMessage(e))
		}
		return strings.Join(parts, "; ")
	}
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) && reqErr.RequestBody != nil && reqErr.Err != nil {
		return "request body: " + reqErr.Err.Error()
	}
	return err.Error()
}
