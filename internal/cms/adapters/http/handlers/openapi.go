package handlers

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

var pathParam = regexp.MustCompile(`:([A-Za-z0-9_]+)`)

// OpenAPI строит документ OpenAPI 3.0 по зарегистрированным маршрутам приложения.
func OpenAPI(title, version string) fiber.Handler {
	return func(c fiber.Ctx) error {
		paths := map[string]map[string]any{}
		for _, route := range c.App().GetRoutes(true) {
			if route.Method == fiber.MethodHead || !strings.HasPrefix(route.Path, "/api") {
				continue
			}

			path := pathParam.ReplaceAllString(route.Path, "{$1}")
			operation := map[string]any{
				"operationId": strings.ToLower(route.Method) + strings.NewReplacer("/", "_", "{", "", "}", "", "-", "_").Replace(path),
				"responses":   map[string]any{"default": map[string]any{"description": "JSON response"}},
			}
			if route.Name != "" {
				operation["summary"] = route.Name
			}
			if len(route.Params) > 0 {
				params := make([]map[string]any, 0, len(route.Params))
				for _, p := range route.Params {
					params = append(params, map[string]any{
						"name":     p,
						"in":       "path",
						"required": true,
						"schema":   map[string]string{"type": "string"},
					})
				}
				operation["parameters"] = params
			}

			if paths[path] == nil {
				paths[path] = map[string]any{}
			}
			paths[path][strings.ToLower(route.Method)] = operation
		}

		return sendJSON(c, fiber.StatusOK, fiber.Map{
			"openapi": "3.0.3",
			"info":    fiber.Map{"title": title, "version": version},
			"paths":   paths,
		})
	}
}
