package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CreateScript создаёт сценарий в общем каталоге
func (h *Handlers) CreateScript(c echo.Context) error {
	var req createScriptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest("name must not be empty")
	}
	if req.EstimatedMinutes <= 0 {
		return badRequest("estimated_minutes must be positive")
	}

	script, err := h.scriptService.CreateScript(c.Request().Context(), req.Name, req.EstimatedMinutes)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, script)
}

// GetScript выдаёт сценарий каталога
func (h *Handlers) GetScript(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}

	script, err := h.scriptService.GetScript(c.Request().Context(), scriptID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, script)
}

// DeleteScript удаляет сценарий каталога вместе с персонажами
func (h *Handlers) DeleteScript(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}

	if err := h.scriptService.DeleteScript(c.Request().Context(), scriptID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListStoreScripts выдаёт страницу активаций сценариев магазина
func (h *Handlers) ListStoreScripts(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	scripts, total, err := h.scriptService.ListStoreScripts(c.Request().Context(), storeID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pageBody{Items: emptyIfNil(scripts), Limit: limit, Offset: offset, Total: total})
}

// CreateStoreScript активирует сценарий каталога в магазине
func (h *Handlers) CreateStoreScript(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}

	var req createStoreScriptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.ScriptID <= 0 {
		return badRequest("script_id must be a positive integer")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	storeScript, err := h.scriptService.CreateStoreScript(c.Request().Context(), storeID, req.ScriptID, isActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, storeScript)
}

// UpdateStoreScript включает или выключает активацию сценария
func (h *Handlers) UpdateStoreScript(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}

	var req updateStoreScriptRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.IsActive == nil {
		return badRequest("is_active must be provided")
	}

	storeScript, err := h.scriptService.UpdateStoreScript(c.Request().Context(), storeID, scriptID, *req.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, storeScript)
}

// DeleteStoreScript убирает активацию сценария из магазина
func (h *Handlers) DeleteStoreScript(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}

	if err := h.scriptService.DeleteStoreScript(c.Request().Context(), storeID, scriptID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
