// Package dispatch содержит машину состояний экстренного вызова и защиту
// от параллельной обработки одного и того же вызова.
package dispatch

import (
	"sync"
	"time"

	"github.com/shenikar/golden_hour_dispatch/internal/models"
)

// transitions - таблица допустимых переходов. FAILED достижим из любого
// нетерминального состояния, регресс к более раннему этапу запрещён.
var transitions = map[models.EmergencyStatus][]models.EmergencyStatus{
	models.StatusRegistered:       {models.StatusTriaged, models.StatusFailed},
	models.StatusTriaged:          {models.StatusHospitalAssigned, models.StatusFailed},
	models.StatusHospitalAssigned: {models.StatusNotified, models.StatusFailed},
	models.StatusNotified:         {models.StatusCompleted, models.StatusFailed},
	models.StatusCompleted:        {},
	models.StatusFailed:           {},
}

// CanTransition проверяет допустимость перехода по таблице
func CanTransition(from, to models.EmergencyStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// MarkTriaged переводит вызов в TRIAGED и записывает результат классификации.
// Severity и Priority выставляются только вместе.
func MarkTriaged(e *models.Emergency, result models.TriageResult) error {
	if !CanTransition(e.Status, models.StatusTriaged) {
		return &InvalidTransitionError{From: string(e.Status), To: string(models.StatusTriaged)}
	}
	severity := result.Severity
	priority := result.Priority
	e.Severity = &severity
	e.Priority = &priority
	e.Status = models.StatusTriaged
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkHospitalAssigned переводит вызов в HOSPITAL_ASSIGNED и записывает
// назначенную больницу вместе с ETA.
func MarkHospitalAssigned(e *models.Emergency, assignment *models.HospitalAssignment) error {
	if !CanTransition(e.Status, models.StatusHospitalAssigned) {
		return &InvalidTransitionError{From: string(e.Status), To: string(models.StatusHospitalAssigned)}
	}
	hospitalID := assignment.Hospital.ID
	eta := assignment.Route.DurationMin
	e.HospitalID = &hospitalID
	e.EtaMinutes = &eta
	e.Status = models.StatusHospitalAssigned
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkNotified переводит вызов в NOTIFIED после хотя бы одной успешной доставки
func MarkNotified(e *models.Emergency) error {
	if !CanTransition(e.Status, models.StatusNotified) {
		return &InvalidTransitionError{From: string(e.Status), To: string(models.StatusNotified)}
	}
	e.Status = models.StatusNotified
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkCompleted закрывает вызов по внешнему сигналу о прибытии
func MarkCompleted(e *models.Emergency) error {
	if !CanTransition(e.Status, models.StatusCompleted) {
		return &InvalidTransitionError{From: string(e.Status), To: string(models.StatusCompleted)}
	}
	now := time.Now().UTC()
	e.Status = models.StatusCompleted
	e.CompletedAt = &now
	e.UpdatedAt = now
	return nil
}

// MarkFailed переводит вызов в FAILED с кодом причины
func MarkFailed(e *models.Emergency, reason string) error {
	if !CanTransition(e.Status, models.StatusFailed) {
		return &InvalidTransitionError{From: string(e.Status), To: string(models.StatusFailed)}
	}
	e.Status = models.StatusFailed
	e.FailureReason = &reason
	e.UpdatedAt = time.Now().UTC()
	return nil
}

// Guard гарантирует не более одного активного конвейера на вызов.
// Повторный Acquire для того же id возвращает ErrBusy, а не ждёт.
type Guard struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

func NewGuard() *Guard {
	return &Guard{active: make(map[int64]struct{})}
}

// Acquire занимает конвейер для вызова id
func (g *Guard) Acquire(id int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.active[id]; busy {
		return ErrBusy
	}
	g.active[id] = struct{}{}
	return nil
}

// Release освобождает конвейер. Вызов для незанятого id безопасен.
func (g *Guard) Release(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, id)
}
