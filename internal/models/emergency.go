package models

import (
	"time"
)

// EmergencyStatus - этап жизненного цикла экстренного вызова
type EmergencyStatus string

const (
	StatusRegistered       EmergencyStatus = "REGISTERED"
	StatusTriaged          EmergencyStatus = "TRIAGED"
	StatusHospitalAssigned EmergencyStatus = "HOSPITAL_ASSIGNED"
	StatusNotified         EmergencyStatus = "NOTIFIED"
	StatusCompleted        EmergencyStatus = "COMPLETED"
	StatusFailed           EmergencyStatus = "FAILED"
)

// Severity - уровень срочности по итогам триажа (RED > YELLOW > GREEN)
type Severity string

const (
	SeverityRed    Severity = "RED"
	SeverityYellow Severity = "YELLOW"
	SeverityGreen  Severity = "GREEN"
)

// Rank возвращает числовой ранг срочности, чем меньше - тем срочнее
func (s Severity) Rank() int {
	switch s {
	case SeverityRed:
		return 1
	case SeverityYellow:
		return 2
	case SeverityGreen:
		return 3
	}
	return 2
}

// Emergency - запись об экстренном вызове.
// Severity и Priority заполняются вместе на этапе TRIAGED,
// HospitalID и EtaMinutes - вместе на этапе HOSPITAL_ASSIGNED.
type Emergency struct {
	ID            int64           `json:"id"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Address       string          `json:"address,omitempty"`
	Symptoms      []string        `json:"symptoms"`
	Vitals        map[string]any  `json:"vitals"`
	Age           int             `json:"age"`
	ContactEmail  string          `json:"contact_email,omitempty"`
	Severity      *Severity       `json:"severity,omitempty"`
	Priority      *int            `json:"priority,omitempty"`
	Status        EmergencyStatus `json:"status"`
	HospitalID    *string         `json:"hospital_id,omitempty"`
	EtaMinutes    *int            `json:"eta_minutes,omitempty"`
	FailureReason *string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	CompletedAt   *time.Time      `json:"completed_at,omitempty"`
}

// Snapshot возвращает срез состояния вызова для внешнего потребителя
func (e *Emergency) Snapshot() *EmergencySnapshot {
	return &EmergencySnapshot{
		ID:            e.ID,
		Status:        e.Status,
		Severity:      e.Severity,
		Priority:      e.Priority,
		HospitalID:    e.HospitalID,
		EtaMinutes:    e.EtaMinutes,
		FailureReason: e.FailureReason,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// EmergencyInput - каноническая форма входных данных вызова.
// Симптомы всегда список строк, возраст всегда целое число лет.
type EmergencyInput struct {
	EmergencyID  int64 // 0 - новый вызов, иначе повторный вход для существующего
	Latitude     float64
	Longitude    float64
	Symptoms     []string
	Vitals       map[string]any
	Age          int
	ContactEmail string
}

// EmergencySnapshot - итог обработки вызова, возвращаемый наружу
type EmergencySnapshot struct {
	ID            int64           `json:"id"`
	Status        EmergencyStatus `json:"status"`
	Severity      *Severity       `json:"severity,omitempty"`
	Priority      *int            `json:"priority,omitempty"`
	HospitalID    *string         `json:"hospital_id,omitempty"`
	EtaMinutes    *int            `json:"eta_minutes,omitempty"`
	FailureReason *string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TriageResult - результат классификации симптомов
type TriageResult struct {
	Severity    Severity `json:"severity"`
	Priority    int      `json:"priority"`
	Confidence  float64  `json:"confidence"`
	MatchedRule string   `json:"matched_rule"`
}

// RouteEstimate - оценка маршрута между двумя точками
type RouteEstimate struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin int     `json:"duration_min"`
	Source      string  `json:"source"` // "osrm" или "haversine"
}

// HospitalAssignment - выбранная больница с оценкой маршрута
type HospitalAssignment struct {
	Hospital *Hospital     `json:"hospital"`
	Route    RouteEstimate `json:"route"`
	Relaxed  bool          `json:"relaxed"` // true, если фильтр по свободным койкам был снят
}
