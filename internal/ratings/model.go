package ratings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating is the passenger's feedback for one trip. Written exactly once;
// there is no edit path.
type Rating struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	DriverID  uuid.UUID `json:"driver_id"`
	Score     int       `json:"score"`
	Comment   *string   `json:"comment"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidateScore rejects anything outside 1..5 before any DB work; 0 means
// "no stars selected" and is not a submittable rating.
func ValidateScore(score int) error {
	if score < 1 || score > 5 {
		return fmt.Errorf("score must be an integer 1..5")
	}
	return nil
}
