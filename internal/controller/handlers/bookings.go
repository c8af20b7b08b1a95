package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/store_scheduler/internal/model"
	"github.com/Freeeeeet/store_scheduler/internal/repository"
	"github.com/labstack/echo/v4"
)

// CreateIncompleteBooking создаёт черновик брони
func (h *Handlers) CreateIncompleteBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}

	var req createIncompleteBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := checkTargetMonth(req.TargetMonth); err != nil {
		return err
	}
	if len(req.ClientIDs) == 0 {
		return badRequest("client_ids must not be empty")
	}

	booking, err := h.bookingService.CreateIncomplete(c.Request().Context(), storeID, req.TargetMonth, req.ClientIDs, req.ScriptID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, newBookingItem(*booking))
}

// ListBookings выдаёт страницу броней магазина с фильтрами
func (h *Handlers) ListBookings(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}

	limit, offset, err := pagination(c)
	if err != nil {
		return err
	}
	filter := repository.BookingFilter{Limit: limit, Offset: offset}

	if raw := c.QueryParam("booking_status_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 || id > 4 {
			return badRequest("booking_status_id must be between 1 and 4")
		}
		status := model.BookingStatus(id)
		filter.StatusID = &status
	}
	if raw := c.QueryParam("target_month"); raw != "" {
		month, err := parseMonth(raw)
		if err != nil {
			return err
		}
		filter.TargetMonth = &month
	}
	if raw := c.QueryParam("has_conflict"); raw != "" {
		has, err := strconv.ParseBool(raw)
		if err != nil {
			return badRequest("has_conflict must be a boolean")
		}
		filter.HasConflict = &has
	}

	bookings, total, err := h.bookingService.List(c.Request().Context(), storeID, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, pageBody{
		Items:  newBookingItems(bookings),
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// GetBooking выдаёт бронь вместе со списком конфликтующих броней
func (h *Handlers) GetBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Get(c.Request().Context(), storeID, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// UpdateBooking меняет месяц и/или сценарий черновика
func (h *Handlers) UpdateBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req updateIncompleteBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.TargetMonth == nil && req.ScriptID == nil && !req.ClearScript {
		return badRequest("at least one field must be provided")
	}
	if req.TargetMonth != nil {
		if err := checkTargetMonth(*req.TargetMonth); err != nil {
			return err
		}
	}

	booking, err := h.bookingService.UpdateIncomplete(c.Request().Context(), storeID, bookingID, repository.IncompleteUpdate{
		TargetMonth: req.TargetMonth,
		ScriptID:    req.ScriptID,
		ClearScript: req.ClearScript,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// ConfirmBooking переводит черновик в scheduled
func (h *Handlers) ConfirmBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req confirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.StartAt.IsZero() {
		return badRequest("start_at is required")
	}

	booking, err := h.bookingService.Confirm(c.Request().Context(), storeID, bookingID, req.StartAt, req.PreferredRoomID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// CancelBooking отменяет бронь из любого статуса
func (h *Handlers) CancelBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Cancel(c.Request().Context(), storeID, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// CompleteBooking переводит бронь из scheduled в completed
func (h *Handlers) CompleteBooking(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	booking, err := h.bookingService.Complete(c.Request().Context(), storeID, bookingID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// AddBookingClient привязывает клиента к черновику
func (h *Handlers) AddBookingClient(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}

	var req addBookingClientRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if req.ClientID <= 0 {
		return badRequest("client_id must be a positive integer")
	}

	booking, err := h.bookingService.AddClient(c.Request().Context(), storeID, bookingID, req.ClientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// RemoveBookingClient отвязывает клиента от черновика
func (h *Handlers) RemoveBookingClient(c echo.Context) error {
	storeID, err := pathID(c, "store_id")
	if err != nil {
		return err
	}
	bookingID, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	clientID, err := pathID(c, "client_id")
	if err != nil {
		return err
	}

	booking, err := h.bookingService.RemoveClient(c.Request().Context(), storeID, bookingID, clientID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, newBookingItem(*booking))
}

// parseMonth принимает дату или отметку времени первого дня месяца
func parseMonth(raw string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, badRequest("target_month must be a date like 2026-09-01")
		}
	}
	if err := checkTargetMonth(t); err != nil {
		return time.Time{}, err
	}
	return t, nil
}
