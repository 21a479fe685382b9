package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date       string          `json:"date"`
	ResourceID string          `json:"resourceId"`
	Slots      []AvailableSlot `json:"slots"`
	Count      int             `json:"count"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
}

// ToUseCaseRequest парсит дату и собирает запрос use case
func ToUseCaseRequest(userID, resourceID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		UserID:     userID,
		ResourceID: resourceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Price:     slot.Price,
		}
	}

	return &AvailableSlotsResponse{
		Date:       resp.Date.Format(domain.DateFormat),
		ResourceID: resp.ResourceID,
		Slots:      slots,
		Count:      len(slots),
	}
}
