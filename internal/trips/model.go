package trips

import (
	"time"

	"github.com/google/uuid"

	"github.com/Abdulah-eng/driverApp/internal/domain"
	"github.com/Abdulah-eng/driverApp/internal/money"
)

// Mirrors DB columns from the `trips` table. Trips are append-only history:
// there is no delete path, only status transitions.
type Trip struct {
	ID       uuid.UUID `json:"id"`
	DriverID uuid.UUID `json:"driver_id"`

	PickupLocation  string   `json:"pickup_location"`
	DropoffLocation string   `json:"dropoff_location"`
	PickupLat       *float64 `json:"pickup_lat"`
	PickupLng       *float64 `json:"pickup_lng"`
	DropoffLat      *float64 `json:"dropoff_lat"`
	DropoffLng      *float64 `json:"dropoff_lng"`

	PassengerName  *string `json:"passenger_name"`
	PassengerPhone *string `json:"passenger_phone"`

	Fare        money.Amount      `json:"fare"`
	VehicleType string            `json:"vehicle_type"`
	Status      domain.TripStatus `json:"status"`

	// started_at is set on pending->active, completed_at on active->completed.
	ScheduledAt *time.Time `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
