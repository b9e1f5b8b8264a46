package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePoint(t *testing.T) {
	p := Point{Lat: 28.6289, Lng: 77.2065}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetry(t *testing.T) {
	points := []struct {
		a, b Point
	}{
		{Point{28.6289, 77.2065}, Point{28.5245, 77.2060}},
		{Point{55.75, 37.61}, Point{59.93, 30.33}},
		{Point{-33.86, 151.20}, Point{51.50, -0.12}},
		{Point{0, 0}, Point{0, 180}},
	}

	for _, tc := range points {
		assert.Equal(t, Distance(tc.a, tc.b), Distance(tc.b, tc.a))
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// Москва - Санкт-Петербург, около 634 км по прямой
	moscow := Point{Lat: 55.7558, Lng: 37.6173}
	spb := Point{Lat: 59.9311, Lng: 30.3609}

	d := Distance(moscow, spb)
	assert.InDelta(t, 634.0, d, 5.0)
}

func TestDistance_ShortHop(t *testing.T) {
	// Точка вызова и ближайшая больница из сценария конца-в-конец
	incident := Point{Lat: 28.6289, Lng: 77.2065}
	hospital := Point{Lat: 28.6358, Lng: 77.2041}

	d := Distance(incident, hospital)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 2.0)
}

func TestETA_Floor(t *testing.T) {
	// Короткие расстояния не опускаются ниже 5 минут
	assert.Equal(t, 5, ETA(0.1, 40))
	assert.Equal(t, 5, ETA(0, 40))
	assert.Equal(t, 5, ETA(3.3, 40))
}

func TestETA_Truncation(t *testing.T) {
	// 10 км при 40 км/ч = 15 минут ровно
	assert.Equal(t, 15, ETA(10, 40))
	// 10.5 км при 40 км/ч = 15.75 минут, дробная часть отбрасывается
	assert.Equal(t, 15, ETA(10.5, 40))
	// 25 км при 40 км/ч = 37.5 минут
	assert.Equal(t, 37, ETA(25, 40))
}

func TestETA_DefaultSpeed(t *testing.T) {
	// Некорректная скорость заменяется значением по умолчанию 40 км/ч
	assert.Equal(t, ETA(20, 40), ETA(20, 0))
	assert.Equal(t, ETA(20, 40), ETA(20, -10))
}
