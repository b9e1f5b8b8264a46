// Package geo содержит чистые геовычисления без внешних вызовов:
// расстояние по дуге большого круга и грубую оценку времени в пути.
// Используется как fallback, когда маршрутный сервис недоступен.
package geo

import "math"

const (
	// Радиус Земли в километрах
	earthRadiusKm = 6371.0

	// Минимальная оценка времени в пути в минутах
	minETAMinutes = 5
)

// Point - координаты WGS84. Диапазоны валидируются на границе API,
// сюда попадают уже проверенные значения.
type Point struct {
	Lat float64
	Lng float64
}

// Distance возвращает расстояние между точками по формуле гаверсинусов,
// округлённое до одного знака после запятой.
func Distance(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(earthRadiusKm*c*10) / 10
}

// ETA возвращает оценку времени в пути в целых минутах при средней скорости
// speedKmh. Дробная часть отбрасывается, результат не меньше 5 минут.
func ETA(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = 40
	}
	minutes := int(distanceKm / speedKmh * 60)
	if minutes < minETAMinutes {
		return minETAMinutes
	}
	return minutes
}
