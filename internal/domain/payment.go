package domain

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
)

// CardDetails реквизиты карты
type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holderName"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Payment данные оплаты для выбранного способа
type Payment struct {
	Method     PaymentMethod `json:"method"`
	Card       *CardDetails  `json:"card,omitempty"`
	TransferID string        `json:"transferId,omitempty"` // UPI ID вида name@bank
}
