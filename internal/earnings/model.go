package earnings

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

// Earning is one immutable ledger entry. There is no update path; balances
// are always recomputed from the entries.
type Earning struct {
	ID          uuid.UUID          `json:"id"`
	DriverID    uuid.UUID          `json:"driver_id"`
	TripID      *uuid.UUID         `json:"trip_id"`
	Amount      money.Amount       `json:"amount"`
	Type        domain.EarningType `json:"type"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
}
