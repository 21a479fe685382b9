package workflow

import "errors"

var (
	// ErrInvalidTransition событие недопустимо в текущем состоянии
	ErrInvalidTransition = errors.New("workflow: invalid transition")

	// ErrMissingName не указано имя клиента
	ErrMissingName = errors.New("workflow: customer name is required")

	// ErrReselectionRequired после конфликта слотов нужно заново выбрать слоты и открыть бронь
	ErrReselectionRequired = errors.New("workflow: slots must be reselected")

	// ErrInvalidCardDetails некорректные данные карты
	ErrInvalidCardDetails = errors.New("workflow: invalid card details")

	// ErrInvalidTransferID некорректный UPI ID
	ErrInvalidTransferID = errors.New("workflow: invalid transfer id")

	// ErrUnsupportedPaymentMethod неизвестный способ оплаты
	ErrUnsupportedPaymentMethod = errors.New("workflow: unsupported payment method")

	// ErrPaymentFailed платеж не прошел
	ErrPaymentFailed = errors.New("workflow: payment failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("workflow: internal error")
)
