package generate_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	generateSlots "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/generate_slots"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	Date            string `json:"date"`                      // "2024-06-01"
	OpenTime        string `json:"openTime,omitempty"`        // "10:00"
	CloseTime       string `json:"closeTime,omitempty"`       // "18:00"
	DurationMinutes int    `json:"durationMinutes,omitempty"` // 60
	Price           *int64 `json:"price,omitempty"`           // 1500
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	ResourceID string        `json:"resourceId"`
	Date       string        `json:"date"`
	Created    []CreatedSlot `json:"created"`
	Skipped    int           `json:"skipped"`
}

// CreatedSlot созданный слот
type CreatedSlot struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *GenerateSlotsRequest) ToUseCaseRequest(resourceID string) (*generateSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		ResourceID:      resourceID,
		Date:            date,
		OpenTime:        types.TimeString(r.OpenTime),
		CloseTime:       types.TimeString(r.CloseTime),
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	created := make([]CreatedSlot, len(resp.Created))
	for i, slot := range resp.Created {
		created[i] = CreatedSlot{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Price:     slot.Price,
		}
	}

	return &GenerateSlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Created:    created,
		Skipped:    resp.Skipped,
	}
}
