package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID     string    // ID пользователя (для логирования, не влияет на результат)
	ResourceID string    // ID площадки
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date       time.Time          // Дата, на которую запрашивались слоты
	ResourceID string             // ID площадки
	Slots      []*domain.TimeSlot // Свободные слоты по возрастанию времени начала
}
