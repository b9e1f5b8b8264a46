package dispatch

import (
	"errors"
	"fmt"
)

// Коды причин терминального отказа
const (
	ReasonNoHospital            = "no reachable hospital"
	ReasonNotificationExhausted = "notification delivery exhausted"
)

var (
	// ErrBusy - для этого вызова уже выполняется конвейер обработки
	ErrBusy = errors.New("dispatch pipeline already in progress for this emergency")

	// ErrNoCandidates - после фильтрации не осталось ни одной подходящей больницы
	ErrNoCandidates = errors.New("no eligible hospital candidates")

	// ErrPending - больница ещё не назначена
	ErrPending = errors.New("hospital assignment pending")

	// ErrNotFound - запись о вызове не найдена
	ErrNotFound = errors.New("emergency not found")

	// ErrNoBedsAvailable - атомарное списание койки не прошло, свободных не осталось
	ErrNoBedsAvailable = errors.New("no beds available to reserve")
)

// ValidationError - некорректные входные данные, отклоняются до входа в конвейер
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError - попытка недопустимого перехода состояния
type InvalidTransitionError struct {
	From, To string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

// TerminalFailure - конвейер достиг состояния FAILED, несёт код причины
type TerminalFailure struct {
	Reason string
}

func (e *TerminalFailure) Error() string {
	return fmt.Sprintf("emergency dispatch failed: %s", e.Reason)
}
