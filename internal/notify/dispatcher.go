// Package notify составляет и доставляет оповещения по итогам диспетчеризации.
// Доставка каждому получателю независима: отказ одного не блокирует остальных.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// Transport - внешний канал доставки одного сообщения
type Transport interface {
	Deliver(ctx context.Context, recipient, subject, body string) error
}

// RecipientKind - роль получателя в отчёте о доставке
const (
	RecipientHospital = "hospital"
	RecipientPatient  = "patient"
)

// Delivery - итог доставки одному получателю
type Delivery struct {
	Recipient string `json:"recipient"`
	Kind      string `json:"kind"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// DispatchReport - итог шага оповещения по всем получателям
type DispatchReport struct {
	Deliveries []Delivery `json:"deliveries"`
	Attempts   int        `json:"attempts"`
}

// Delivered сообщает, дошло ли оповещение хотя бы до одного получателя
func (r DispatchReport) Delivered() bool {
	for _, d := range r.Deliveries {
		if d.Success {
			return true
		}
	}
	return false
}

// Dispatcher доставляет оповещения с повторами при полном отказе
type Dispatcher struct {
	transport      Transport
	logger         *logrus.Logger
	maxRetries     int
	baseDelay      time.Duration
	deliverTimeout time.Duration
}

func NewDispatcher(transport Transport, logger *logrus.Logger, maxRetries int, baseDelay, deliverTimeout time.Duration) *Dispatcher {
	if deliverTimeout <= 0 {
		deliverTimeout = 5 * time.Second
	}
	return &Dispatcher{
		transport:      transport,
		logger:         logger,
		maxRetries:     maxRetries,
		baseDelay:      baseDelay,
		deliverTimeout: deliverTimeout,
	}
}

type recipient struct {
	kind    string
	email   string
	subject string
	body    string
}

// Send оповещает больницу и, при наличии контакта, пациента. Шаг считается
// успешным при хотя бы одной доставке; при полном отказе выполняется до
// maxRetries повторов с линейной задержкой, после чего отчёт возвращается
// как есть - решение о FAILED принимает координатор.
func (d *Dispatcher) Send(ctx context.Context, e *models.Emergency, triage models.TriageResult, assignment *models.HospitalAssignment) DispatchReport {
	log := d.logger.WithFields(logrus.Fields{
		"component":    "notify",
		"emergency_id": e.ID,
		"hospital_id":  assignment.Hospital.ID,
	})

	recipients := d.composeRecipients(e, triage, assignment)
	report := DispatchReport{}

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		report.Attempts = attempt + 1
		report.Deliveries = report.Deliveries[:0]

		for _, r := range recipients {
			delivery := Delivery{Recipient: r.email, Kind: r.kind}
			// Каждая доставка ограничена таймаутом: зависший транспорт
			// не должен держать конвейер вызова бесконечно
			dctx, cancel := context.WithTimeout(ctx, d.deliverTimeout)
			err := d.transport.Deliver(dctx, r.email, r.subject, r.body)
			cancel()
			if err != nil {
				delivery.Error = err.Error()
				log.WithError(err).WithField("recipient_kind", r.kind).Warn("Alert delivery failed")
			} else {
				delivery.Success = true
				log.WithField("recipient_kind", r.kind).Info("Alert delivered")
			}
			report.Deliveries = append(report.Deliveries, delivery)
		}

		if report.Delivered() {
			return report
		}

		if attempt < d.maxRetries {
			delay := d.baseDelay * time.Duration(attempt+1)
			log.Warnf("All alert deliveries failed, retrying in %v. Retries left: %d", delay, d.maxRetries-attempt)
			select {
			case <-ctx.Done():
				return report
			case <-time.After(delay):
			}
		}
	}

	log.Errorf("Failed to deliver alerts after %d attempts", report.Attempts)
	return report
}

func (d *Dispatcher) composeRecipients(e *models.Emergency, triage models.TriageResult, assignment *models.HospitalAssignment) []recipient {
	address := e.Address
	if address == "" {
		address = "GPS Coords Only"
	}

	hospitalSubject := fmt.Sprintf("URGENT: Incoming Emergency - %s", triage.Severity)
	hospitalBody := fmt.Sprintf(
		"EMERGENCY ALERT\n--------------------------------\nSeverity: %s\nPriority: %d\nSymptoms: %s\nPatient Age: %d\nPatient Location: %s\n\nETA: %d minutes\nDistance: %.1f km\n",
		triage.Severity, triage.Priority, strings.Join(e.Symptoms, ", "), e.Age, address,
		assignment.Route.DurationMin, assignment.Route.DistanceKm,
	)

	recipients := []recipient{
		{
			kind:    RecipientHospital,
			email:   assignment.Hospital.ContactEmail,
			subject: hospitalSubject,
			body:    hospitalBody,
		},
	}

	if e.ContactEmail != "" {
		patientBody := fmt.Sprintf(
			"Help is on the way.\n\nYou have been assigned to %s.\nEstimated ambulance arrival: %d minutes.\n",
			assignment.Hospital.Name, assignment.Route.DurationMin,
		)
		recipients = append(recipients, recipient{
			kind:    RecipientPatient,
			email:   e.ContactEmail,
			subject: "Emergency Response Dispatched",
			body:    patientBody,
		})
	}

	return recipients
}
