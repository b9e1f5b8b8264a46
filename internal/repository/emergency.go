package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/shenikar/golden_hour_dispatch/internal/service"
)

type EmergencyRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewEmergencyRepository(db *pgxpool.Pool, redisClient *redis.Client) service.EmergencyRepository {
	return &EmergencyRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об экстренном вызове в бд
func (r *EmergencyRepository) Create(ctx context.Context, e *models.Emergency) error {
	symptoms, err := json.Marshal(e.Symptoms)
	if err != nil {
		return fmt.Errorf("failed to marshal symptoms: %w", err)
	}
	vitals, err := json.Marshal(e.Vitals)
	if err != nil {
		return fmt.Errorf("failed to marshal vitals: %w", err)
	}

	query := `
		INSERT INTO emergencies (latitude, longitude, address, symptoms, vitals, age, contact_email, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		e.Latitude,
		e.Longitude,
		e.Address,
		symptoms,
		vitals,
		e.Age,
		e.ContactEmail,
		e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create emergency: %w", err)
	}
	return nil
}

// GetByID возвращает экстренный вызов по его числовому id
func (r *EmergencyRepository) GetByID(ctx context.Context, id int64) (*models.Emergency, error) {
	e := &models.Emergency{}
	var symptoms, vitals []byte
	query := `
		SELECT
			id,
			latitude,
			longitude,
			address,
			symptoms,
			vitals,
			age,
			contact_email,
			severity,
			priority,
			status,
			hospital_id,
			eta_minutes,
			failure_reason,
			created_at,
			updated_at,
			completed_at
		FROM emergencies
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.Latitude,
		&e.Longitude,
		&e.Address,
		&symptoms,
		&vitals,
		&e.Age,
		&e.ContactEmail,
		&e.Severity,
		&e.Priority,
		&e.Status,
		&e.HospitalID,
		&e.EtaMinutes,
		&e.FailureReason,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.CompletedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("emergency with id %d: %w", id, dispatch.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get emergency by id: %w", err)
	}

	if err := json.Unmarshal(symptoms, &e.Symptoms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal symptoms: %w", err)
	}
	if len(vitals) > 0 {
		if err := json.Unmarshal(vitals, &e.Vitals); err != nil {
			return nil, fmt.Errorf("failed to unmarshal vitals: %w", err)
		}
	}
	return e, nil
}

func (r *EmergencyRepository) Update(ctx context.Context, e *models.Emergency) error {
	query := `
		UPDATE emergencies SET
			address = $1,
			severity = $2,
			priority = $3,
			status = $4,
			hospital_id = $5,
			eta_minutes = $6,
			failure_reason = $7,
			completed_at = $8,
			updated_at = NOW()
		WHERE id = $9;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		e.Address,
		e.Severity,
		e.Priority,
		e.Status,
		e.HospitalID,
		e.EtaMinutes,
		e.FailureReason,
		e.CompletedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update emergency: %w", err)
	}

	// Проверка, была ли обновлена хоть одна строка, если RowsAffected() == 0, значит вызова с таким id не существует
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("emergency with id %d not found for update", e.ID)
	}
	return nil
}

// AppendAgentLog сохраняет запись аудита одного шага конвейера
func (r *EmergencyRepository) AppendAgentLog(ctx context.Context, entry *models.AgentLog) error {
	query := `
		INSERT INTO agent_logs (id, agent_id, emergency_id, action, input, output, duration_ms, success, error_detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.AgentID,
		entry.EmergencyID,
		entry.Action,
		entry.Input,
		entry.Output,
		entry.DurationMs,
		entry.Success,
		entry.ErrorDetail,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append agent log: %w", err)
	}
	return nil
}

// GetSnapshotFromCache пытается получить срез состояния вызова из Redis
func (r *EmergencyRepository) GetSnapshotFromCache(ctx context.Context, id int64) (*models.EmergencySnapshot, error) {
	key := fmt.Sprintf("emergency:%d", id)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get emergency snapshot from cache: %w", err)
	}

	snapshot := &models.EmergencySnapshot{}
	if err := json.Unmarshal(val, snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal emergency snapshot from cache: %w", err)
	}
	return snapshot, nil
}

// SetSnapshotCache сохраняет срез состояния вызова в Redis
func (r *EmergencyRepository) SetSnapshotCache(ctx context.Context, snapshot *models.EmergencySnapshot) error {
	key := fmt.Sprintf("emergency:%d", snapshot.ID)
	val, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal emergency snapshot for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set emergency snapshot in cache: %w", err)
	}
	return nil
}
