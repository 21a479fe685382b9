package domain

// Значения по умолчанию для генерации слотов (как в каталоге площадок)
const (
	DefaultOpenTime            = "10:00"
	DefaultCloseTime           = "18:00"
	DefaultSlotDurationMinutes = 60
	DefaultSlotPrice           = 1500
	DefaultBookingWindowDays   = 7 // сегодня + 6 дней вперёд
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 240
	MaxSlotPrice           = 1_000_000
	MaxSlotsPerReservation = 24
	MaxCustomerNameLength  = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
