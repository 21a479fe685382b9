package workflow

import "github.com/m04kA/SMC-PlaygroundBooking/internal/domain"

// Event событие workflow
type Event string

const (
	EventOpen    Event = "open"
	EventConfirm Event = "confirm"
	EventPay     Event = "pay"
	EventCancel  Event = "cancel"
	EventReset   Event = "reset"
)

// allowedTransitions целевое состояние для каждой пары (состояние, событие).
// Pay при конфликте слотов возвращает в awaiting_confirmation, это обрабатывается отдельно.
// Open из awaiting_confirmation допустим только после такого конфликта (см. Open).
var allowedTransitions = map[domain.WorkflowState]map[Event]domain.WorkflowState{
	domain.StateIdle: {
		EventOpen: domain.StateAwaitingConfirmation,
	},
	domain.StateAwaitingConfirmation: {
		EventOpen:    domain.StateAwaitingConfirmation,
		EventConfirm: domain.StateAwaitingPayment,
		EventCancel:  domain.StateCancelled,
	},
	domain.StateAwaitingPayment: {
		EventPay:    domain.StateCompleted,
		EventCancel: domain.StateAwaitingConfirmation,
	},
	domain.StateCompleted: {
		EventReset: domain.StateIdle,
	},
	domain.StateCancelled: {
		EventReset: domain.StateIdle,
	},
}

// CanTransition возвращает целевое состояние, если событие допустимо
func CanTransition(from domain.WorkflowState, event Event) (domain.WorkflowState, bool) {
	to, ok := allowedTransitions[from][event]
	return to, ok
}
