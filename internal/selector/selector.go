// Package selector ранжирует больницы для экстренного вызова. Выбор
// консультативный: коечный фонд здесь не изменяется, подтверждение
// с атомарным списанием койки выполняется отдельным шагом.
package selector

import (
	"context"
	"sort"

	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/geo"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// RouteEstimator отдаёт оценку маршрута между двумя точками
type RouteEstimator interface {
	RouteDetails(ctx context.Context, origin, destination geo.Point) (models.RouteEstimate, error)
}

// RankedHospital - кандидат с оценкой маршрута и категорией коек,
// по которой он прошёл фильтр
type RankedHospital struct {
	Hospital    models.Hospital
	Route       models.RouteEstimate
	BedCategory models.BedCategory
}

// Selector ранжирует кандидатов по времени в пути
type Selector struct {
	routes RouteEstimator
	logger *logrus.Logger
}

func New(routes RouteEstimator, logger *logrus.Logger) *Selector {
	return &Selector{routes: routes, logger: logger}
}

// BedCategoryFor определяет категорию коек по срочности. RED и YELLOW требуют
// реанимацию, если хоть у одного кандидата она вообще есть, иначе обычные койки.
// GREEN всегда идёт в обычные койки.
func BedCategoryFor(severity models.Severity, candidates []models.Hospital) models.BedCategory {
	if severity == models.SeverityGreen {
		return models.BedCategoryGeneral
	}
	for _, h := range candidates {
		if h.ICUBedsTotal > 0 {
			return models.BedCategoryICU
		}
	}
	return models.BedCategoryGeneral
}

// Options управляют фильтрацией кандидатов
type Options struct {
	// RequiredCapabilities - обязательные специализации, кандидаты без них исключаются
	RequiredCapabilities []string
	// RelaxBedFilter снимает требование свободной койки (повторная попытка координатора)
	RelaxBedFilter bool
}

// Select возвращает кандидатов, отсортированных по возрастанию времени в пути,
// при равенстве - по убыванию свободных коек, затем по id для детерминизма.
// Пустой результат - dispatch.ErrNoCandidates, не исключение.
func (s *Selector) Select(ctx context.Context, location geo.Point, severity models.Severity, candidates []models.Hospital, opts Options) ([]RankedHospital, error) {
	log := s.logger.WithFields(logrus.Fields{
		"component": "selector",
		"severity":  severity,
		"relaxed":   opts.RelaxBedFilter,
	})

	category := BedCategoryFor(severity, candidates)

	ranked := make([]RankedHospital, 0, len(candidates))
	for _, h := range candidates {
		if !hasAllCapabilities(h, opts.RequiredCapabilities) {
			continue
		}
		if !opts.RelaxBedFilter && h.AvailableBeds(category) == 0 {
			continue
		}

		route, err := s.routes.RouteDetails(ctx, location, geo.Point{Lat: h.Latitude, Lng: h.Longitude})
		if err != nil {
			// Оценщик сам уходит в haversine-fallback, ошибка здесь означает,
			// что кандидата оценить нечем - пропускаем его
			log.WithError(err).WithField("hospital_id", h.ID).Warn("Failed to estimate route, skipping candidate")
			continue
		}

		ranked = append(ranked, RankedHospital{Hospital: h, Route: route, BedCategory: category})
	}

	if len(ranked) == 0 {
		log.Info("No eligible hospital candidates after filtering")
		return nil, dispatch.ErrNoCandidates
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Route.DurationMin != ranked[j].Route.DurationMin {
			return ranked[i].Route.DurationMin < ranked[j].Route.DurationMin
		}
		bi := ranked[i].Hospital.AvailableBeds(category)
		bj := ranked[j].Hospital.AvailableBeds(category)
		if bi != bj {
			return bi > bj
		}
		return ranked[i].Hospital.ID < ranked[j].Hospital.ID
	})

	log.WithFields(logrus.Fields{
		"candidates": len(ranked),
		"best":       ranked[0].Hospital.ID,
	}).Info("Hospital candidates ranked")

	return ranked, nil
}

func hasAllCapabilities(h models.Hospital, required []string) bool {
	for _, r := range required {
		if !h.HasCapability(r) {
			return false
		}
	}
	return true
}
