package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListRooms выдаёт страницу комнат магазина
func (h *Handlers) ListRooms(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	rooms, total, err := h.roomService.List(c.Request().Context(), storeID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pageBody{Items: emptyIfNil(rooms), Limit: limit, Offset: offset, Total: total})
}

// CreateRoom создаёт комнату магазина
func (h *Handlers) CreateRoom(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return badRequest("name must not be empty")
	}

	room, err := h.roomService.Create(c.Request().Context(), storeID, req.Name)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, room)
}

// UpdateRoom меняет имя и/или активность комнаты
func (h *Handlers) UpdateRoom(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	roomID, err := pathID(c, "room_id")
	if err != nil {
		return err
	}

	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.Name == nil && req.IsActive == nil {
		return badRequest("at least one field must be provided")
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			return badRequest("name must not be empty")
		}
		req.Name = &trimmed
	}

	room, err := h.roomService.Update(c.Request().Context(), storeID, roomID, req.Name, req.IsActive)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, room)
}

// DeleteRoom удаляет комнату без броней
func (h *Handlers) DeleteRoom(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	roomID, err := pathID(c, "room_id")
	if err != nil {
		return err
	}

	if err := h.roomService.Delete(c.Request().Context(), storeID, roomID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
