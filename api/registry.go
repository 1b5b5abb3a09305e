package api

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productimport.GO/core/registry"
)

// ModuleFunc registers routes on the authenticated /api group.
type ModuleFunc func(g *echo.Group, db *gorm.DB)

// RouteFunc registers public routes, such as /health, on the root instance.
type RouteFunc func(e *echo.Echo, db *gorm.DB)

// RegisterModule adds an /api module. Call from init(); panics once
// ApplyModules ran.
func RegisterModule(fn ModuleFunc) {
	mustAppend(registry.KeyRegistryAPI, fn)
}

// RegisterRoute adds a public route module. Call from init().
func RegisterRoute(fn RouteFunc) {
	mustAppend(registry.KeyRegistryRoutes, fn)
}

// ApplyModules mounts every /api module on g.
func ApplyModules(g *echo.Group, db *gorm.DB) {
	for _, fn := range registry.Seal[ModuleFunc](registry.GlobalRegistry, registry.KeyRegistryAPI) {
		fn(g, db)
	}
}

// ApplyRoutes mounts every public route module on e.
func ApplyRoutes(e *echo.Echo, db *gorm.DB) {
	for _, fn := range registry.Seal[RouteFunc](registry.GlobalRegistry, registry.KeyRegistryRoutes) {
		fn(e, db)
	}
}

func mustAppend[T any](key string, fn T) {
	if err := registry.Append(registry.GlobalRegistry, key, fn); err != nil {
		panic("api: " + err.Error())
	}
}
