package ticket

import (
	"time"

	"github.com/google/uuid"
)

// Status is the authoritative verification state of a ticket. Verification
// reads it from the persisted row and nothing else.
type Status string

const (
	StatusValid     Status = "valid"
	StatusUsed      Status = "used"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
)

// Ticket is issued once per booking. TextCode is the human-readable code
// printed on the ticket; QRPayload is the same code rendered as a base64
// PNG data URL.
type Ticket struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;uniqueIndex"`
	PassengerName string    `json:"passenger_name" gorm:"size:255"`
	TextCode      string    `json:"text_code" gorm:"not null;size:17;uniqueIndex:idx_tickets_text_code"`
	QRPayload     string    `json:"qr_payload" gorm:"type:text"`
	IssuedDate    time.Time `json:"issued_date" gorm:"not null"`
	Status        Status    `json:"status" gorm:"type:varchar(20);not null;default:'valid';check:status IN ('valid','used','expired','cancelled')"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}
