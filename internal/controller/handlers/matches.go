package handlers

import (
	"net/http"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"github.com/labstack/echo/v4"
)

// ListClientMatches выдаёт все назначения клиентов на роли брони
func (h *Handlers) ListClientMatches(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	matches, err := h.clientMatches.List(c.Request().Context(), storeID, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, emptyIfNil(matches))
}

// CreateClientMatch назначает клиента на игровую роль
func (h *Handlers) CreateClientMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req createClientMatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.CharacterID <= 0 || req.ClientID <= 0 {
		return badRequest("character_id and client_id must be positive integers")
	}

	match, err := h.clientMatches.Create(c.Request().Context(), storeID, bookingID, req.CharacterID, req.ClientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, match)
}

// UpdateClientMatch меняет роль и/или клиента назначения
func (h *Handlers) UpdateClientMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	matchID, err := pathID(c, "match_id")
	if err != nil {
		return err
	}

	var req updateClientMatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.CharacterID == nil && req.ClientID == nil {
		return badRequest("at least one field must be provided")
	}

	match, err := h.clientMatches.Update(c.Request().Context(), storeID, bookingID, matchID, req.CharacterID, req.ClientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, match)
}

// DeleteClientMatch снимает клиента с роли
func (h *Handlers) DeleteClientMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	matchID, err := pathID(c, "match_id")
	if err != nil {
		return err
	}

	if err := h.clientMatches.Delete(c.Request().Context(), storeID, bookingID, matchID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListDmMatches выдаёт все назначения ведущих брони
func (h *Handlers) ListDmMatches(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	matches, err := h.dmMatches.List(c.Request().Context(), storeID, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]dmMatchItem, 0, len(matches))
	for _, m := range matches {
		items = append(items, newDmMatchItem(m))
	}

	return c.JSON(http.StatusOK, items)
}

// CreateDmMatch назначает ведущего на DM-роль или свободным резервом
func (h *Handlers) CreateDmMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req createDmMatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.DmID <= 0 {
		return badRequest("dm_id must be a positive integer")
	}

	assignment := model.UnassignedHold()
	if req.CharacterID != nil {
		assignment = model.AssignedCharacter(*req.CharacterID)
	}

	match, err := h.dmMatches.Create(c.Request().Context(), storeID, bookingID, req.DmID, assignment)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, newDmMatchItem(*match))
}

// UpdateDmMatch меняет ведущего и/или его назначение; clear_character
// переводит назначение в свободный резерв
func (h *Handlers) UpdateDmMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	matchID, err := pathID(c, "match_id")
	if err != nil {
		return err
	}

	var req updateDmMatchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.DmID == nil && req.CharacterID == nil && !req.ClearCharacter {
		return badRequest("at least one field must be provided")
	}
	if req.ClearCharacter && req.CharacterID != nil {
		return badRequest("clear_character and character_id are mutually exclusive")
	}

	upd := repository.DmMatchUpdate{DmID: req.DmID}
	if req.ClearCharacter {
		hold := model.UnassignedHold()
		upd.Assignment = &hold
	} else if req.CharacterID != nil {
		assigned := model.AssignedCharacter(*req.CharacterID)
		upd.Assignment = &assigned
	}

	match, err := h.dmMatches.Update(c.Request().Context(), storeID, bookingID, matchID, upd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newDmMatchItem(*match))
}

// DeleteDmMatch снимает назначение ведущего
func (h *Handlers) DeleteDmMatch(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	matchID, err := pathID(c, "match_id")
	if err != nil {
		return err
	}

	if err := h.dmMatches.Delete(c.Request().Context(), storeID, bookingID, matchID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
