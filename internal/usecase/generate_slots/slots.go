package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// generateTimeSlots нарезает интервал [openTime, closeTime) на слоты фиксированной длительности.
// Хвост короче slotDuration отбрасывается.
func generateTimeSlots(
	resourceID string,
	date time.Time,
	openTime, closeTime types.TimeString,
	slotDuration int,
	price int64,
	newID func() string,
) ([]*domain.TimeSlot, error) {
	slots := make([]*domain.TimeSlot, 0)
	currentSlot := openTime

	for currentSlot.IsBefore(closeTime) {
		slotEnd, err := currentSlot.AddMinutes(slotDuration)
		if err != nil {
			// конец слота за полночью
			break
		}
		if slotEnd.IsAfter(closeTime) {
			break
		}

		slots = append(slots, &domain.TimeSlot{
			ID:         newID(),
			ResourceID: resourceID,
			Date:       domain.DateOnly(date),
			StartTime:  currentSlot,
			EndTime:    slotEnd,
			Price:      price,
		})
		currentSlot = slotEnd
	}

	return slots, nil
}
