package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health отвечает для проверок живости
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
