package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/store_scheduler/internal/service"
	"github.com/labstack/echo/v4"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type pageBody struct {
	Items  any `json:"items"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// respondError переводит доменные ошибки в HTTP-статусы
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Code: "not_found", Message: err.Error()})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody{Code: "conflict", Message: err.Error()})
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	return err
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errorBody{Code: "bad_request", Message: message})
}

// emptyIfNil отдаёт пустой список вместо null в JSON
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// pathID парсит целочисленный параметр пути
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest(name + " must be a positive integer")
	}
	return id, nil
}

// pagination читает limit (1..100, по умолчанию 20) и offset (>= 0)
func pagination(c echo.Context) (limit, offset int, err error) {
	limit = 20
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			return 0, 0, badRequest("limit must be between 1 and 100")
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, badRequest("offset must not be negative")
		}
	}
	return limit, offset, nil
}
