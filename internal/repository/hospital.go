package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/shenikar/golden_hour_dispatch/internal/service"
)

type HospitalRepository struct {
	db *pgxpool.Pool
}

func NewHospitalRepository(db *pgxpool.Pool) service.HospitalRepository {
	return &HospitalRepository{db: db}
}

// ListHospitals возвращает весь справочник больниц
func (r *HospitalRepository) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	query := `
		SELECT
			id,
			name,
			latitude,
			longitude,
			icu_beds_available,
			icu_beds_total,
			general_beds_available,
			general_beds_total,
			capabilities,
			contact_email,
			created_at,
			updated_at
		FROM hospitals
		ORDER BY id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	defer rows.Close()

	hospitals := make([]models.Hospital, 0)
	for rows.Next() {
		h := models.Hospital{}
		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.Latitude,
			&h.Longitude,
			&h.ICUBedsAvailable,
			&h.ICUBedsTotal,
			&h.GeneralBedsAvailable,
			&h.GeneralBedsTotal,
			&h.Capabilities,
			&h.ContactEmail,
			&h.CreatedAt,
			&h.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hospital row: %w", err)
		}
		hospitals = append(hospitals, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return hospitals, nil
}

// GetByID возвращает больницу по её строковому id
func (r *HospitalRepository) GetByID(ctx context.Context, id string) (*models.Hospital, error) {
	h := &models.Hospital{}
	query := `
		SELECT
			id,
			name,
			latitude,
			longitude,
			icu_beds_available,
			icu_beds_total,
			general_beds_available,
			general_beds_total,
			capabilities,
			contact_email,
			created_at,
			updated_at
		FROM hospitals
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID,
		&h.Name,
		&h.Latitude,
		&h.Longitude,
		&h.ICUBedsAvailable,
		&h.ICUBedsTotal,
		&h.GeneralBedsAvailable,
		&h.GeneralBedsTotal,
		&h.Capabilities,
		&h.ContactEmail,
		&h.CreatedAt,
		&h.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("hospital with id %s not found", id)
		}
		return nil, fmt.Errorf("failed to get hospital by id: %w", err)
	}
	return h, nil
}

// ReserveBed атомарно списывает одну свободную койку заданной категории.
// Условие available > 0 в самом UPDATE исключает гонку между конвейерами:
// если коек не осталось, ни одна строка не обновится.
func (r *HospitalRepository) ReserveBed(ctx context.Context, hospitalID string, category models.BedCategory) error {
	var query string
	switch category {
	case models.BedCategoryICU:
		query = `
			UPDATE hospitals SET
				icu_beds_available = icu_beds_available - 1,
				updated_at = NOW()
			WHERE id = $1 AND icu_beds_available > 0;
		`
	case models.BedCategoryGeneral:
		query = `
			UPDATE hospitals SET
				general_beds_available = general_beds_available - 1,
				updated_at = NOW()
			WHERE id = $1 AND general_beds_available > 0;
		`
	default:
		return fmt.Errorf("unknown bed category: %s", category)
	}

	cmdTag, err := r.db.Exec(ctx, query, hospitalID)
	if err != nil {
		return fmt.Errorf("failed to reserve bed: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("hospital %s: %w", hospitalID, dispatch.ErrNoBedsAvailable)
	}
	return nil
}
