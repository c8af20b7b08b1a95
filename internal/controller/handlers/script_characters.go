package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListCharacters выдаёт страницу персонажей сценария
func (h *Handlers) ListCharacters(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	characters, total, err := h.characterService.List(c.Request().Context(), scriptID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pageBody{Items: emptyIfNil(characters), Limit: limit, Offset: offset, Total: total})
}

// GetCharacter выдаёт персонажа сценария
func (h *Handlers) GetCharacter(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}
	characterID, err := pathID(c, "character_id")
	if err != nil {
		return err
	}

	character, err := h.characterService.Get(c.Request().Context(), scriptID, characterID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, character)
}

// CreateCharacter создаёт персонажа сценария
func (h *Handlers) CreateCharacter(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}

	var req createCharacterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest("character_name must not be empty")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	character, err := h.characterService.Create(c.Request().Context(), scriptID, req.Name, req.IsDM, isActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, character)
}

// UpdateCharacter меняет имя, роль и/или активность персонажа
func (h *Handlers) UpdateCharacter(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}
	characterID, err := pathID(c, "character_id")
	if err != nil {
		return err
	}

	var req updateCharacterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Name == nil && req.IsDM == nil && req.IsActive == nil {
		return badRequest("at least one field must be provided")
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return badRequest("character_name must not be empty")
		}
		req.Name = &trimmed
	}

	character, err := h.characterService.Update(c.Request().Context(), scriptID, characterID, req.Name, req.IsDM, req.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, character)
}

// DeleteCharacter удаляет персонажа сценария
func (h *Handlers) DeleteCharacter(c echo.Context) error {
	scriptID, err := pathID(c, "script_id")
	if err != nil {
		return err
	}
	characterID, err := pathID(c, "character_id")
	if err != nil {
		return err
	}

	if err := h.characterService.Delete(c.Request().Context(), scriptID, characterID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
