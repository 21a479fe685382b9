package workflow

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

const (
	cardNumberLength = 16
	cvvLength        = 3
)

// validateName проверяет имя клиента, возвращает обрезанное имя
func validateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrMissingName
	}
	if len([]rune(trimmed)) > domain.MaxCustomerNameLength {
		return "", fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	return trimmed, nil
}

// validatePayment проверяет данные оплаты для выбранного способа
func validatePayment(payment domain.Payment) error {
	switch payment.Method {
	case domain.PaymentCard:
		return validateCard(payment.Card)
	case domain.PaymentUPI:
		if !strings.Contains(strings.TrimSpace(payment.TransferID), "@") {
			return fmt.Errorf("%w: expected name@bank", ErrInvalidTransferID)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, payment.Method)
	}
}

func validateCard(card *domain.CardDetails) error {
	if card == nil {
		return fmt.Errorf("%w: card details are required", ErrInvalidCardDetails)
	}

	number := strings.ReplaceAll(card.Number, " ", "")
	if len(number) != cardNumberLength || !isDigits(number) {
		return fmt.Errorf("%w: card number must be %d digits", ErrInvalidCardDetails, cardNumberLength)
	}

	if strings.TrimSpace(card.HolderName) == "" {
		return fmt.Errorf("%w: holder name is required", ErrInvalidCardDetails)
	}

	if strings.TrimSpace(card.Expiry) == "" {
		return fmt.Errorf("%w: expiry is required", ErrInvalidCardDetails)
	}

	cvv := strings.TrimSpace(card.CVV)
	if len(cvv) != cvvLength || !isDigits(cvv) {
		return fmt.Errorf("%w: cvv must be %d digits", ErrInvalidCardDetails, cvvLength)
	}

	return nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
