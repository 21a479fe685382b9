package notifier

import "errors"

var (
	// ErrConnect не удалось подключиться к брокеру
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish не удалось опубликовать событие
	ErrPublish = errors.New("notifier: failed to publish event")
)
