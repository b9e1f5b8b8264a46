package triage

import (
	"testing"

	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_CardiacHighRisk(t *testing.T) {
	// Сценарий конца-в-конец: боль в груди + пульс 125 + возраст 65
	result := Classify(
		[]string{"chest_pain", "shortness_of_breath"},
		map[string]any{"heartRate": 125},
		65,
	)

	assert.Equal(t, models.SeverityRed, result.Severity)
	assert.Equal(t, 1, result.Priority)
	assert.Equal(t, "cardiac_high_risk", result.MatchedRule)
	assert.InDelta(t, 0.95, result.Confidence, 0.001)
}

func TestClassify_HeartRateUnderscoreKey(t *testing.T) {
	// Показатели приходят и в snake_case - оба ключа равнозначны
	result := Classify([]string{"chest_pain"}, map[string]any{"heart_rate": 130}, 70)

	assert.Equal(t, models.SeverityRed, result.Severity)
	assert.Equal(t, "cardiac_high_risk", result.MatchedRule)
}

func TestClassify_ChestPainWithBreathlessness(t *testing.T) {
	result := Classify([]string{"chest_pain", "shortness_of_breath"}, nil, 40)

	assert.Equal(t, models.SeverityRed, result.Severity)
	assert.Equal(t, 1, result.Priority)
	assert.Equal(t, "cardiac_respiratory", result.MatchedRule)
}

func TestClassify_Unresponsive(t *testing.T) {
	for _, symptom := range []string{"unconscious", "not_breathing", "severe_bleeding"} {
		result := Classify([]string{symptom}, nil, 30)
		assert.Equal(t, models.SeverityRed, result.Severity, symptom)
		assert.Equal(t, "unresponsive", result.MatchedRule, symptom)
	}
}

func TestClassify_ChestPainIsolated(t *testing.T) {
	// Боль в груди без отягчающих факторов - жёлтый уровень
	result := Classify([]string{"chest_pain"}, map[string]any{"heartRate": 80}, 35)

	assert.Equal(t, models.SeverityYellow, result.Severity)
	assert.Equal(t, 2, result.Priority)
	assert.Equal(t, "chest_pain_isolated", result.MatchedRule)
}

func TestClassify_ChestPainElderly(t *testing.T) {
	// Возраст старше 60 эскалирует боль в груди до красного даже без пульса
	result := Classify([]string{"chest_pain"}, nil, 72)

	assert.Equal(t, models.SeverityRed, result.Severity)
	assert.Equal(t, "cardiac_elevated", result.MatchedRule)
	assert.InDelta(t, 0.85, result.Confidence, 0.001)
}

func TestClassify_FeverVulnerableAge(t *testing.T) {
	child := Classify([]string{"high_fever"}, nil, 3)
	assert.Equal(t, models.SeverityYellow, child.Severity)
	assert.Equal(t, "fever_vulnerable_age", child.MatchedRule)

	elderly := Classify([]string{"high_fever"}, nil, 80)
	assert.Equal(t, "fever_vulnerable_age", elderly.MatchedRule)
}

func TestClassify_MinorComplaint(t *testing.T) {
	result := Classify([]string{"sprain"}, nil, 25)

	assert.Equal(t, models.SeverityGreen, result.Severity)
	assert.Equal(t, 3, result.Priority)
}

func TestClassify_NoMatchDefaultsToYellow(t *testing.T) {
	// Неизвестные симптомы не приводят к отказу - возвращается дефолт
	result := Classify([]string{"general_malaise"}, nil, 40)

	assert.Equal(t, models.SeverityYellow, result.Severity)
	assert.Equal(t, 2, result.Priority)
	assert.Equal(t, "default", result.MatchedRule)
	assert.InDelta(t, 0.30, result.Confidence, 0.001)
}

func TestClassify_EmptyInputNeverFails(t *testing.T) {
	result := Classify(nil, nil, 0)

	assert.Equal(t, models.SeverityYellow, result.Severity)
	assert.Equal(t, "default", result.MatchedRule)
}

func TestClassify_AlwaysReturnsKnownSeverity(t *testing.T) {
	known := map[models.Severity]bool{
		models.SeverityRed:    true,
		models.SeverityYellow: true,
		models.SeverityGreen:  true,
	}

	inputs := [][]string{
		nil,
		{"chest_pain"},
		{"sprain", "rash"},
		{"unconscious", "minor_cut"},
		{"something_unknown"},
	}
	for _, symptoms := range inputs {
		result := Classify(symptoms, map[string]any{"heartRate": "not-a-number"}, 50)
		assert.True(t, known[result.Severity], "symptoms=%v", symptoms)
	}
}

func TestClassify_HighestSeverityWins(t *testing.T) {
	// Зелёный и красный симптомы одновременно - выбирается красный
	result := Classify([]string{"minor_cut", "unconscious"}, nil, 30)

	assert.Equal(t, models.SeverityRed, result.Severity)
	assert.Equal(t, "unresponsive", result.MatchedRule)
}

func TestClassify_VitalsParsing(t *testing.T) {
	// Числовые строки из jsonb разбираются, мусор игнорируется
	asString := Classify([]string{"chest_pain"}, map[string]any{"heartRate": "130"}, 65)
	assert.Equal(t, "cardiac_high_risk", asString.MatchedRule)

	asGarbage := Classify([]string{"chest_pain"}, map[string]any{"heartRate": "180/100"}, 50)
	assert.Equal(t, "chest_pain_isolated", asGarbage.MatchedRule)
}
