package handlers

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
)

func (a *App) HealthCheck(c echo.Context) error {
	if err := a.db.Ping(c.Request().Context()); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return c.NoContent(http.StatusOK)
}
