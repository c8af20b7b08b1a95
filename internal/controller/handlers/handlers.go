package handlers

import (
	"github.com/Freeeeeet/store_scheduler/internal/service"
	"go.uber.org/zap"
)

// Handlers держит все HTTP-обработчики API
type Handlers struct {
	bookingService   *service.BookingService
	roomService      *service.RoomService
	slotService      *service.SlotService
	scriptService    *service.ScriptService
	characterService *service.ScriptCharacterService
	clientMatches    *service.CharacterClientMatchService
	dmMatches        *service.CharacterDmMatchService
	logger           *zap.Logger
}

func NewHandlers(
	bookingService *service.BookingService,
	roomService *service.RoomService,
	slotService *service.SlotService,
	scriptService *service.ScriptService,
	characterService *service.ScriptCharacterService,
	clientMatches *service.CharacterClientMatchService,
	dmMatches *service.CharacterDmMatchService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		bookingService:   bookingService,
		roomService:      roomService,
		slotService:      slotService,
		scriptService:    scriptService,
		characterService: characterService,
		clientMatches:    clientMatches,
		dmMatches:        dmMatches,
		logger:           logger,
	}
}
