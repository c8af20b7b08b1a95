package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListSlots выдаёт страницу слотов магазина
func (h *Handlers) ListSlots(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}

	slots, total, err := h.slotService.List(c.Request().Context(), storeID, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pageBody{Items: emptyIfNil(slots), Limit: limit, Offset: offset, Total: total})
}

// CreateSlot создаёт слот магазина
func (h *Handlers) CreateSlot(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}

	var req createSlotRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.StartAt.IsZero() {
		return badRequest("start_at is required")
	}

	slot, err := h.slotService.Create(c.Request().Context(), storeID, req.StartAt)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, slot)
}

// UpdateSlot переносит слот на другое время
func (h *Handlers) UpdateSlot(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	slotID, err := pathID(c, "slot_id")
	if err != nil {
		return err
	}

	var req updateSlotRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.StartAt.IsZero() {
		return badRequest("start_at is required")
	}

	slot, err := h.slotService.Update(c.Request().Context(), storeID, slotID, req.StartAt)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, slot)
}

// DeleteSlot удаляет слот без броней
func (h *Handlers) DeleteSlot(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	slotID, err := pathID(c, "slot_id")
	if err != nil {
		return err
	}

	if err := h.slotService.Delete(c.Request().Context(), storeID, slotID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
