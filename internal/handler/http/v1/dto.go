package v1

import (
	"time"
)

// LocationDTO координаты точки вызова
// @Description Координаты точки вызова
type LocationDTO struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// CreateEmergencyRequest DTO для регистрации экстренного вызова.
// EmergencyID позволяет повторно войти в конвейер существующего вызова
// (например, при обрыве соединения) - повторный вход идемпотентен.
// @Description DTO для регистрации экстренного вызова
type CreateEmergencyRequest struct {
	EmergencyID  int64          `json:"emergency_id,omitempty" validate:"omitempty,gt=0"`
	Location     *LocationDTO   `json:"location" validate:"required"`
	Symptoms     []string       `json:"symptoms" validate:"required,min=1,dive,required"`
	Vitals       map[string]any `json:"vitals,omitempty"`
	Age          int            `json:"age" validate:"required,gt=0,lte=130"`
	ContactEmail string         `json:"contact_email,omitempty" validate:"omitempty,email"`
}

// EmergencyResponse DTO для ответа с состоянием вызова
// @Description DTO для ответа с состоянием вызова
type EmergencyResponse struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	Severity      *string   `json:"severity,omitempty"`
	Priority      *int      `json:"priority,omitempty"`
	HospitalID    *string   `json:"hospital_id,omitempty"`
	EtaMinutes    *int      `json:"eta_minutes,omitempty"`
	FailureReason *string   `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HospitalResponse DTO для ответа с информацией о больнице
// @Description DTO для ответа с информацией о больнице
type HospitalResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Latitude             float64  `json:"latitude"`
	Longitude            float64  `json:"longitude"`
	ICUBedsAvailable     int      `json:"icu_beds_available"`
	ICUBedsTotal         int      `json:"icu_beds_total"`
	GeneralBedsAvailable int      `json:"general_beds_available"`
	GeneralBedsTotal     int      `json:"general_beds_total"`
	Capabilities         []string `json:"capabilities"`
	ContactEmail         string   `json:"contact_email"`
}
