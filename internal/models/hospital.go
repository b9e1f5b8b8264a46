package models

import "time"

// Hospital - больница из справочника. Для координатора данные только на чтение,
// инвариант available <= total обеспечивается на уровне БД.
type Hospital struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	ICUBedsAvailable     int       `json:"icu_beds_available"`
	ICUBedsTotal         int       `json:"icu_beds_total"`
	GeneralBedsAvailable int       `json:"general_beds_available"`
	GeneralBedsTotal     int       `json:"general_beds_total"`
	Capabilities         []string  `json:"capabilities"`
	ContactEmail         string    `json:"contact_email"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// BedCategory - категория коечного фонда, по которой фильтруются кандидаты
type BedCategory string

const (
	BedCategoryICU     BedCategory = "icu"
	BedCategoryGeneral BedCategory = "general"
)

// AvailableBeds возвращает число свободных коек в заданной категории
func (h *Hospital) AvailableBeds(category BedCategory) int {
	if category == BedCategoryICU {
		return h.ICUBedsAvailable
	}
	return h.GeneralBedsAvailable
}

// HasCapability проверяет наличие специализации или оборудования
func (h *Hospital) HasCapability(name string) bool {
	for _, c := range h.Capabilities {
		if c == name {
			return true
		}
	}
	return false
}
