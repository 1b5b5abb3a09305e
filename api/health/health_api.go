// Package health exposes the unauthenticated liveness route.
package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"productimport.GO/api"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

// RegisterHealthRoutes adds GET /health, which pings the database.
func RegisterHealthRoutes(e *echo.Echo, db *gorm.DB) {
	e.GET("/health", func(c echo.Context) error {
		status := echo.Map{"status": "ok"}
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request().Context())
			}
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "down", "error": err.Error()})
			}
		}
		return c.JSON(http.StatusOK, status)
	})
}
