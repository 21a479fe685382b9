package paymentgateway

import "errors"

var (
	// ErrInvalidAmount сумма платежа должна быть положительной
	ErrInvalidAmount = errors.New("paymentgateway: invalid amount")

	// ErrDeclined платеж отклонен
	ErrDeclined = errors.New("paymentgateway: payment declined")

	// ErrUnknownCharge возврат по неизвестному платежу
	ErrUnknownCharge = errors.New("paymentgateway: unknown charge")
)
