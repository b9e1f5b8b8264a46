// Package triage реализует классификацию экстренного вызова по таблице
// взвешенных правил. Классификация тотальна: при отсутствии совпадений
// возвращается YELLOW/2 с низкой уверенностью, ошибок здесь не бывает.
package triage

import (
	"encoding/json"
	"strconv"

	"github.com/shenikar/golden_hour_dispatch/internal/models"
)

// Input - нормализованные входные данные триажа
type Input struct {
	Symptoms []string
	Vitals   map[string]any
	Age      int
}

// rule - одно правило классификации с весом уверенности
type rule struct {
	name       string
	severity   models.Severity
	priority   int
	confidence float64
	match      func(in Input) bool
}

// defaultResult возвращается, когда ни одно правило не сработало
var defaultResult = models.TriageResult{
	Severity:    models.SeverityYellow,
	Priority:    2,
	Confidence:  0.30,
	MatchedRule: "default",
}

var rules = []rule{
	{
		name:       "cardiac_high_risk",
		severity:   models.SeverityRed,
		priority:   1,
		confidence: 0.95,
		match: func(in Input) bool {
			hr, ok := numericVital(in.Vitals, "heartRate", "heart_rate")
			return in.hasSymptom("chest_pain") && ok && hr > 120 && in.Age > 60
		},
	},
	{
		name:       "unresponsive",
		severity:   models.SeverityRed,
		priority:   1,
		confidence: 0.97,
		match: func(in Input) bool {
			return in.hasAnySymptom("unconscious", "not_breathing", "severe_bleeding")
		},
	},
	{
		name:       "cardiac_respiratory",
		severity:   models.SeverityRed,
		priority:   1,
		confidence: 0.92,
		match: func(in Input) bool {
			return in.hasSymptom("chest_pain") && in.hasSymptom("shortness_of_breath")
		},
	},
	{
		name:       "neurological",
		severity:   models.SeverityRed,
		priority:   1,
		confidence: 0.90,
		match: func(in Input) bool {
			return in.hasAnySymptom("stroke_symptoms", "seizure")
		},
	},
	{
		name:       "cardiac_elevated",
		severity:   models.SeverityRed,
		priority:   1,
		confidence: 0.85,
		match: func(in Input) bool {
			if !in.hasSymptom("chest_pain") {
				return false
			}
			hr, ok := numericVital(in.Vitals, "heartRate", "heart_rate")
			return (ok && hr > 120) || in.Age > 60
		},
	},
	{
		name:       "fever_vulnerable_age",
		severity:   models.SeverityYellow,
		priority:   2,
		confidence: 0.80,
		match: func(in Input) bool {
			return in.hasSymptom("high_fever") && (in.Age < 5 || in.Age > 75)
		},
	},
	{
		name:       "chest_pain_isolated",
		severity:   models.SeverityYellow,
		priority:   2,
		confidence: 0.75,
		match: func(in Input) bool {
			return in.hasSymptom("chest_pain")
		},
	},
	{
		name:       "urgent_injury",
		severity:   models.SeverityYellow,
		priority:   2,
		confidence: 0.70,
		match: func(in Input) bool {
			return in.hasAnySymptom("fracture", "deep_cut", "persistent_vomiting")
		},
	},
	{
		name:       "minor_complaint",
		severity:   models.SeverityGreen,
		priority:   3,
		confidence: 0.85,
		match: func(in Input) bool {
			return in.hasAnySymptom("minor_cut", "mild_fever", "sprain", "rash")
		},
	},
}

// Classify сопоставляет симптомы, показатели и возраст с таблицей правил.
// При нескольких совпадениях выбирается самое срочное, при равной срочности -
// наибольшая уверенность. Диспозиция возвращается всегда.
func Classify(symptoms []string, vitals map[string]any, age int) models.TriageResult {
	in := Input{Symptoms: symptoms, Vitals: vitals, Age: age}

	best := defaultResult
	matched := false

	for _, r := range rules {
		if !r.match(in) {
			continue
		}
		candidate := models.TriageResult{
			Severity:    r.severity,
			Priority:    r.priority,
			Confidence:  r.confidence,
			MatchedRule: r.name,
		}
		if !matched ||
			candidate.Severity.Rank() < best.Severity.Rank() ||
			(candidate.Severity.Rank() == best.Severity.Rank() && candidate.Confidence > best.Confidence) {
			best = candidate
			matched = true
		}
	}

	return best
}

func (in Input) hasSymptom(name string) bool {
	for _, s := range in.Symptoms {
		if s == name {
			return true
		}
	}
	return false
}

func (in Input) hasAnySymptom(names ...string) bool {
	for _, n := range names {
		if in.hasSymptom(n) {
			return true
		}
	}
	return false
}

// numericVital достаёт числовое значение показателя по первому найденному ключу.
// Показатели приходят из jsonb, поэтому значение может быть числом, json.Number
// или строкой; всё нечитаемое молча игнорируется.
func numericVital(vitals map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		raw, ok := vitals[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case int64:
			return float64(v), true
		case json.Number:
			if f, err := v.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
