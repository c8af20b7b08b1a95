package model

import "time"

// CharacterClientMatch назначение клиента на обычную роль в рамках одной брони.
// Уникально по (booking, character) и по (booking, client).
type CharacterClientMatch struct {
	ID          int64     `json:"character_client_match_id"`
	BookingID   int64     `json:"booking_id"`
	CharacterID int64     `json:"character_id"`
	ClientID    int64     `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DmAssignment вариант назначения ведущего: либо конкретная DM-роль, либо
// "свободный" резерв без роли. Один DM может держать не более одного резерва
// на бронь, но занимать несколько разных ролей отдельными строками.
type DmAssignment struct {
	characterID int64
	assigned    bool
}

// AssignedCharacter назначение на конкретную роль
func AssignedCharacter(characterID int64) DmAssignment {
	return DmAssignment{characterID: characterID, assigned: true}
}

// UnassignedHold резерв ведущего без роли
func UnassignedHold() DmAssignment {
	return DmAssignment{}
}

// CharacterID возвращает роль назначения; ok=false для свободного резерва
func (a DmAssignment) CharacterID() (int64, bool) {
	return a.characterID, a.assigned
}

// CharacterDmMatch назначение ведущего в рамках одной брони
type CharacterDmMatch struct {
	ID         int64        `json:"character_dm_match_id"`
	BookingID  int64        `json:"booking_id"`
	DmID       int64        `json:"dm_id"`
	Assignment DmAssignment `json:"-"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
