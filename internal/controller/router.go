package controller

import (
	"github.com/Freeeeeet/store_scheduler/internal/controller/handlers"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes вешает все маршруты API на echo
func RegisterRoutes(e *echo.Echo, h *handlers.Handlers) {
	e.GET("/healthz", h.Health)

	scripts := e.Group("/v1/scripts")
	scripts.POST("", h.CreateScript)
	scripts.GET("/:script_id", h.GetScript)
	scripts.DELETE("/:script_id", h.DeleteScript)
	scripts.GET("/:script_id/characters", h.ListCharacters)
	scripts.POST("/:script_id/characters", h.CreateCharacter)
	scripts.GET("/:script_id/characters/:character_id", h.GetCharacter)
	scripts.PATCH("/:script_id/characters/:character_id", h.UpdateCharacter)
	scripts.DELETE("/:script_id/characters/:character_id", h.DeleteCharacter)

	stores := e.Group("/v1/stores/:store_id")

	stores.GET("/rooms", h.ListRooms)
	stores.POST("/rooms", h.CreateRoom)
	stores.PATCH("/rooms/:room_id", h.UpdateRoom)
	stores.DELETE("/rooms/:room_id", h.DeleteRoom)

	stores.GET("/slots", h.ListSlots)
	stores.POST("/slots", h.CreateSlot)
	stores.PATCH("/slots/:slot_id", h.UpdateSlot)
	stores.DELETE("/slots/:slot_id", h.DeleteSlot)

	stores.GET("/scripts", h.ListStoreScripts)
	stores.POST("/scripts", h.CreateStoreScript)
	stores.PATCH("/scripts/:script_id", h.UpdateStoreScript)
	stores.DELETE("/scripts/:script_id", h.DeleteStoreScript)

	stores.GET("/bookings", h.ListBookings)
	stores.POST("/bookings/incomplete", h.CreateIncompleteBooking)
	stores.GET("/bookings/:booking_id", h.GetBooking)
	stores.PATCH("/bookings/:booking_id", h.UpdateBooking)
	stores.POST("/bookings/:booking_id/confirm", h.ConfirmBooking)
	stores.POST("/bookings/:booking_id/cancel", h.CancelBooking)
	stores.POST("/bookings/:booking_id/complete", h.CompleteBooking)
	stores.POST("/bookings/:booking_id/clients", h.AddBookingClient)
	stores.DELETE("/bookings/:booking_id/clients/:client_id", h.RemoveBookingClient)

	stores.GET("/bookings/:booking_id/character-client-matches", h.ListClientMatches)
	stores.POST("/bookings/:booking_id/character-client-matches", h.CreateClientMatch)
	stores.PATCH("/bookings/:booking_id/character-client-matches/:match_id", h.UpdateClientMatch)
	stores.DELETE("/bookings/:booking_id/character-client-matches/:match_id", h.DeleteClientMatch)

	stores.GET("/bookings/:booking_id/character-dm-matches", h.ListDmMatches)
	stores.POST("/bookings/:booking_id/character-dm-matches", h.CreateDmMatch)
	stores.PATCH("/bookings/:booking_id/character-dm-matches/:match_id", h.UpdateDmMatch)
	stores.DELETE("/bookings/:booking_id/character-dm-matches/:match_id", h.DeleteDmMatch)
}
