package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/golden_hour_dispatch/internal/config"
	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/geo"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/shenikar/golden_hour_dispatch/internal/notify"
	"github.com/shenikar/golden_hour_dispatch/internal/selector"
	"github.com/shenikar/golden_hour_dispatch/internal/triage"
	"github.com/shenikar/golden_hour_dispatch/internal/webhook"
	"github.com/sirupsen/logrus"
)

// DID-идентификаторы агентов для журнала аудита
const (
	agentCoordinator = "did:agent:coordinator"
	agentTriage      = "did:agent:triage"
	agentRouting     = "did:agent:routing"
	agentNotify      = "did:agent:notify"
)

// EmergencyRepository определяет контракт для работы с бд экстренных вызовов
type EmergencyRepository interface {
	Create(ctx context.Context, e *models.Emergency) error
	GetByID(ctx context.Context, id int64) (*models.Emergency, error)
	Update(ctx context.Context, e *models.Emergency) error
	AppendAgentLog(ctx context.Context, entry *models.AgentLog) error
	GetSnapshotFromCache(ctx context.Context, id int64) (*models.EmergencySnapshot, error)
	SetSnapshotCache(ctx context.Context, snapshot *models.EmergencySnapshot) error
}

// HospitalRepository определяет контракт для чтения справочника больниц
// и атомарного резервирования коек
type HospitalRepository interface {
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	GetByID(ctx context.Context, id string) (*models.Hospital, error)
	ReserveBed(ctx context.Context, hospitalID string, category models.BedCategory) error
}

// HospitalSelector ранжирует кандидатов для вызова
type HospitalSelector interface {
	Select(ctx context.Context, location geo.Point, severity models.Severity, candidates []models.Hospital, opts selector.Options) ([]selector.RankedHospital, error)
}

// Notifier доставляет оповещения по итогам назначения
type Notifier interface {
	Send(ctx context.Context, e *models.Emergency, triage models.TriageResult, assignment *models.HospitalAssignment) notify.DispatchReport
}

// Geocoder возвращает адрес по координатам, на отказ отвечает заглушкой
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) string
}

// DispatchService определяет контракт координатора экстренных вызовов
type DispatchService interface {
	HandleEmergency(ctx context.Context, input models.EmergencyInput) (*models.EmergencySnapshot, error)
	GetStatus(ctx context.Context, id int64) (*models.EmergencySnapshot, error)
	GetAssignedHospital(ctx context.Context, id int64) (*models.Hospital, error)
	CompleteEmergency(ctx context.Context, id int64) error
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
}

type dispatchService struct {
	emergencies EmergencyRepository
	hospitals   HospitalRepository
	selector    HospitalSelector
	notifier    Notifier
	geocoder    Geocoder
	publisher   webhook.Publisher
	guard       *dispatch.Guard
	logger      *logrus.Logger
	cfg         *config.Config
}

func NewDispatchService(
	emergencies EmergencyRepository,
	hospitals HospitalRepository,
	hospitalSelector HospitalSelector,
	notifier Notifier,
	geocoder Geocoder,
	publisher webhook.Publisher,
	logger *logrus.Logger,
	cfg *config.Config,
) DispatchService {
	return &dispatchService{
		emergencies: emergencies,
		hospitals:   hospitals,
		selector:    hospitalSelector,
		notifier:    notifier,
		geocoder:    geocoder,
		publisher:   publisher,
		guard:       dispatch.NewGuard(),
		logger:      logger,
		cfg:         cfg,
	}
}

// requiredCapabilities выводит обязательные специализации из сработавшего правила триажа
var ruleCapabilities = map[string][]string{
	"cardiac_high_risk":   {"cardiologist"},
	"cardiac_respiratory": {"cardiologist"},
	"cardiac_elevated":    {"cardiologist"},
	"neurological":        {"neurologist"},
	"unresponsive":        {"trauma_surgeon"},
}

// HandleEmergency проводит вызов через полный конвейер:
// регистрация -> триаж -> выбор больницы -> оповещение.
// Терминальный исход (включая FAILED) возвращается срезом состояния, не ошибкой.
func (s *dispatchService) HandleEmergency(ctx context.Context, input models.EmergencyInput) (*models.EmergencySnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "HandleEmergency",
	})

	if err := validateInput(input); err != nil {
		log.WithError(err).Warn("Rejected malformed emergency input")
		return nil, err
	}

	e, err := s.registerOrLoad(ctx, input)
	if err != nil {
		return nil, err
	}
	log = log.WithField("emergency_id", e.ID)

	// Повторный вход идемпотентен: вызов, уже прошедший регистрацию,
	// не обрабатывается заново - возвращаем его текущее состояние
	if e.Status != models.StatusRegistered {
		log.WithField("status", e.Status).Info("Emergency already processed, returning current snapshot")
		return e.Snapshot(), nil
	}

	// Не более одного активного конвейера на вызов
	if err := s.guard.Acquire(e.ID); err != nil {
		log.Warn("Concurrent pipeline rejected")
		return nil, err
	}
	defer s.guard.Release(e.ID)

	// Отключение инициатора не должно бросать наполовину обработанный вызов:
	// после захвата конвейера работаем вне контекста запроса
	pctx := context.WithoutCancel(ctx)

	if e.Address == "" {
		gctx, cancel := context.WithTimeout(pctx, s.cfg.RoutingTimeout)
		e.Address = s.geocoder.ReverseGeocode(gctx, e.Latitude, e.Longitude)
		cancel()
	}

	triageResult, err := s.runTriage(pctx, e)
	if err != nil {
		return s.failPipeline(pctx, e, log, err.Error())
	}

	assignment, err := s.runSelection(pctx, e, triageResult)
	if err != nil {
		if errors.Is(err, dispatch.ErrNoCandidates) {
			return s.failPipeline(pctx, e, log, dispatch.ReasonNoHospital)
		}
		return s.failPipeline(pctx, e, log, err.Error())
	}

	if err := s.runNotification(pctx, e, triageResult, assignment); err != nil {
		return s.failPipeline(pctx, e, log, dispatch.ReasonNotificationExhausted)
	}

	snapshot := e.Snapshot()
	if err := s.emergencies.SetSnapshotCache(pctx, snapshot); err != nil {
		log.WithError(err).Warn("Failed to cache emergency snapshot")
	}

	log.WithFields(logrus.Fields{
		"severity":    *e.Severity,
		"hospital_id": *e.HospitalID,
		"eta_minutes": *e.EtaMinutes,
	}).Info("Emergency dispatched successfully")

	return snapshot, nil
}

// GetStatus возвращает срез состояния вызова, сначала из кеша, затем из БД
func (s *dispatchService) GetStatus(ctx context.Context, id int64) (*models.EmergencySnapshot, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "GetStatus",
		"emergency_id": id,
	})

	cached, err := s.emergencies.GetSnapshotFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Snapshot cache lookup failed")
	}
	if cached != nil {
		return cached, nil
	}

	e, err := s.emergencies.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get emergency from repository")
		return nil, fmt.Errorf("service: could not get emergency: %w", err)
	}

	snapshot := e.Snapshot()
	if err := s.emergencies.SetSnapshotCache(ctx, snapshot); err != nil {
		log.WithError(err).Warn("Failed to cache emergency snapshot")
	}
	return snapshot, nil
}

// GetAssignedHospital возвращает назначенную больницу или ErrPending,
// пока назначение не состоялось
func (s *dispatchService) GetAssignedHospital(ctx context.Context, id int64) (*models.Hospital, error) {
	e, err := s.emergencies.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: could not get emergency: %w", err)
	}
	if e.HospitalID == nil {
		return nil, dispatch.ErrPending
	}

	hospital, err := s.hospitals.GetByID(ctx, *e.HospitalID)
	if err != nil {
		return nil, fmt.Errorf("service: could not get assigned hospital: %w", err)
	}
	return hospital, nil
}

// CompleteEmergency закрывает вызов по внешнему сигналу о прибытии
func (s *dispatchService) CompleteEmergency(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "CompleteEmergency",
		"emergency_id": id,
	})

	e, err := s.emergencies.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to complete a non-existent emergency")
		return fmt.Errorf("service: emergency with id %d not found for completion: %w", id, err)
	}

	from := e.Status
	if err := dispatch.MarkCompleted(e); err != nil {
		return err
	}
	if err := s.emergencies.Update(ctx, e); err != nil {
		log.WithError(err).Error("Failed to update emergency in repository")
		return fmt.Errorf("service: could not complete emergency: %w", err)
	}

	s.publishTransition(ctx, e, from)
	if err := s.emergencies.SetSnapshotCache(ctx, e.Snapshot()); err != nil {
		log.WithError(err).Warn("Failed to cache emergency snapshot")
	}

	log.Info("Emergency completed")
	return nil
}

// ListHospitals возвращает справочник больниц
func (s *dispatchService) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	hospitals, err := s.hospitals.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list hospitals: %w", err)
	}
	return hospitals, nil
}

func validateInput(input models.EmergencyInput) error {
	if input.Latitude < -90 || input.Latitude > 90 {
		return &dispatch.ValidationError{Field: "location.lat", Reason: "must be in [-90, 90]"}
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return &dispatch.ValidationError{Field: "location.lng", Reason: "must be in [-180, 180]"}
	}
	if len(input.Symptoms) == 0 {
		return &dispatch.ValidationError{Field: "symptoms", Reason: "at least one symptom is required"}
	}
	if input.Age <= 0 {
		return &dispatch.ValidationError{Field: "age", Reason: "must be a positive number of years"}
	}
	return nil
}

// registerOrLoad создаёт новую запись в REGISTERED либо загружает существующую
// для повторного входа в конвейер
func (s *dispatchService) registerOrLoad(ctx context.Context, input models.EmergencyInput) (*models.Emergency, error) {
	if input.EmergencyID != 0 {
		e, err := s.emergencies.GetByID(ctx, input.EmergencyID)
		if err != nil {
			return nil, fmt.Errorf("service: could not load emergency %d: %w", input.EmergencyID, err)
		}
		return e, nil
	}

	now := time.Now().UTC()
	e := &models.Emergency{
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Symptoms:     input.Symptoms,
		Vitals:       input.Vitals,
		Age:          input.Age,
		ContactEmail: input.ContactEmail,
		Status:       models.StatusRegistered,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.emergencies.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("service: could not create emergency: %w", err)
	}

	s.logStep(ctx, agentCoordinator, e.ID, "register_emergency", input, e.Snapshot(), 0, nil)
	return e, nil
}

func (s *dispatchService) runTriage(ctx context.Context, e *models.Emergency) (models.TriageResult, error) {
	start := time.Now()
	result := triage.Classify(e.Symptoms, e.Vitals, e.Age)
	duration := time.Since(start)

	from := e.Status
	if err := dispatch.MarkTriaged(e, result); err != nil {
		s.logStep(ctx, agentTriage, e.ID, "classify", e.Symptoms, nil, duration, err)
		return result, err
	}
	if err := s.emergencies.Update(ctx, e); err != nil {
		return result, fmt.Errorf("could not persist triage result: %w", err)
	}

	s.logStep(ctx, agentTriage, e.ID, "classify", e.Symptoms, result, duration, nil)
	s.publishTransition(ctx, e, from)
	return result, nil
}

func (s *dispatchService) runSelection(ctx context.Context, e *models.Emergency, triageResult models.TriageResult) (*models.HospitalAssignment, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "dispatch",
		"method":       "runSelection",
		"emergency_id": e.ID,
	})

	candidates, err := s.hospitals.ListHospitals(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list hospital candidates: %w", err)
	}

	location := geo.Point{Lat: e.Latitude, Lng: e.Longitude}
	opts := selector.Options{RequiredCapabilities: ruleCapabilities[triageResult.MatchedRule]}

	start := time.Now()
	ranked, err := s.selector.Select(ctx, location, triageResult.Severity, candidates, opts)
	if errors.Is(err, dispatch.ErrNoCandidates) {
		// Расширяем поиск: снимаем фильтр по свободным койкам
		log.Info("No candidates with free beds, retrying with relaxed bed filter")
		opts.RelaxBedFilter = true
		ranked, err = s.selector.Select(ctx, location, triageResult.Severity, candidates, opts)
	}
	duration := time.Since(start)

	if err != nil {
		s.logStep(ctx, agentRouting, e.ID, "select_hospital", location, nil, duration, err)
		return nil, err
	}

	assignment := s.confirmAssignment(ctx, log, ranked, opts.RelaxBedFilter)
	if assignment == nil && !opts.RelaxBedFilter {
		// Все резервирования проиграны параллельным конвейерам - это тот же
		// дефицит коек, что и пустая строгая выборка, поэтому та же
		// повторная попытка с ослабленным фильтром
		log.Info("All bed reservations lost, retrying with relaxed bed filter")
		opts.RelaxBedFilter = true
		ranked, err = s.selector.Select(ctx, location, triageResult.Severity, candidates, opts)
		if err != nil {
			s.logStep(ctx, agentRouting, e.ID, "select_hospital", location, nil, duration, err)
			return nil, err
		}
		assignment = s.confirmAssignment(ctx, log, ranked, true)
	}
	if assignment == nil {
		err := dispatch.ErrNoCandidates
		s.logStep(ctx, agentRouting, e.ID, "select_hospital", location, nil, duration, err)
		return nil, err
	}

	from := e.Status
	if err := dispatch.MarkHospitalAssigned(e, assignment); err != nil {
		return nil, err
	}
	if err := s.emergencies.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("could not persist hospital assignment: %w", err)
	}

	s.logStep(ctx, agentRouting, e.ID, "select_hospital", location, assignment, duration, nil)
	s.publishTransition(ctx, e, from)
	return assignment, nil
}

// confirmAssignment атомарно резервирует койку у лучшего кандидата, при
// конфликте (койку заняли параллельно) переходит к следующему по рангу.
// В ослабленном режиме свободных коек нет и резервирование не выполняется.
func (s *dispatchService) confirmAssignment(ctx context.Context, log *logrus.Entry, ranked []selector.RankedHospital, relaxed bool) *models.HospitalAssignment {
	for i := range ranked {
		candidate := ranked[i]
		if !relaxed {
			if err := s.hospitals.ReserveBed(ctx, candidate.Hospital.ID, candidate.BedCategory); err != nil {
				log.WithError(err).WithField("hospital_id", candidate.Hospital.ID).
					Warn("Bed reservation lost, trying next candidate")
				continue
			}
		}
		return &models.HospitalAssignment{
			Hospital: &candidate.Hospital,
			Route:    candidate.Route,
			Relaxed:  relaxed,
		}
	}
	return nil
}

func (s *dispatchService) runNotification(ctx context.Context, e *models.Emergency, triageResult models.TriageResult, assignment *models.HospitalAssignment) error {
	start := time.Now()
	report := s.notifier.Send(ctx, e, triageResult, assignment)
	duration := time.Since(start)

	if !report.Delivered() {
		s.logStep(ctx, agentNotify, e.ID, "send_alerts", assignment.Hospital.ID, report, duration, errors.New(dispatch.ReasonNotificationExhausted))
		return errors.New(dispatch.ReasonNotificationExhausted)
	}

	from := e.Status
	if err := dispatch.MarkNotified(e); err != nil {
		return err
	}
	if err := s.emergencies.Update(ctx, e); err != nil {
		return fmt.Errorf("could not persist notification outcome: %w", err)
	}

	s.logStep(ctx, agentNotify, e.ID, "send_alerts", assignment.Hospital.ID, report, duration, nil)
	s.publishTransition(ctx, e, from)
	return nil
}

// failPipeline переводит вызов в FAILED и возвращает терминальный срез.
// Отказ - это исход, а не ошибка, поэтому err наружу не возвращается.
func (s *dispatchService) failPipeline(ctx context.Context, e *models.Emergency, log *logrus.Entry, reason string) (*models.EmergencySnapshot, error) {
	from := e.Status
	if err := dispatch.MarkFailed(e, reason); err != nil {
		return nil, err
	}
	if err := s.emergencies.Update(ctx, e); err != nil {
		log.WithError(err).Error("Failed to persist FAILED status")
		return nil, fmt.Errorf("service: could not persist failure: %w", err)
	}

	s.publishTransition(ctx, e, from)
	snapshot := e.Snapshot()
	if err := s.emergencies.SetSnapshotCache(ctx, snapshot); err != nil {
		log.WithError(err).Warn("Failed to cache emergency snapshot")
	}

	log.WithField("reason", reason).Warn("Emergency dispatch failed")
	return snapshot, nil
}

// logStep пишет одну запись аудита. Сбой журнала не прерывает конвейер.
func (s *dispatchService) logStep(ctx context.Context, agentID string, emergencyID int64, action string, input, output any, duration time.Duration, stepErr error) {
	entry := &models.AgentLog{
		ID:          uuid.New(),
		AgentID:     agentID,
		EmergencyID: emergencyID,
		Action:      action,
		DurationMs:  duration.Milliseconds(),
		Success:     stepErr == nil,
		CreatedAt:   time.Now().UTC(),
	}
	if raw, err := json.Marshal(input); err == nil {
		entry.Input = raw
	}
	if output != nil {
		if raw, err := json.Marshal(output); err == nil {
			entry.Output = raw
		}
	}
	if stepErr != nil {
		detail := stepErr.Error()
		entry.ErrorDetail = &detail
	}

	if err := s.emergencies.AppendAgentLog(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"agent_id":     agentID,
			"emergency_id": emergencyID,
			"action":       action,
		}).Error("Failed to append agent log entry")
	}
}

func (s *dispatchService) publishTransition(ctx context.Context, e *models.Emergency, from models.EmergencyStatus) {
	event := webhook.StatusEvent{
		EmergencyID: e.ID,
		From:        from,
		To:          e.Status,
		Severity:    e.Severity,
		HospitalID:  e.HospitalID,
		Reason:      e.FailureReason,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("emergency_id", e.ID).Warn("Failed to publish status event")
	}
}
