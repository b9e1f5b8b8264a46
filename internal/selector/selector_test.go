package selector

import (
	"bytes"
	"context"
	"testing"

	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/geo"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// haversineEstimator - оценщик на чистой геометрии, без сетевых вызовов
type haversineEstimator struct{}

func (haversineEstimator) RouteDetails(_ context.Context, origin, destination geo.Point) (models.RouteEstimate, error) {
	d := geo.Distance(origin, destination)
	return models.RouteEstimate{
		DistanceKm:  d,
		DurationMin: geo.ETA(d, 40),
		Source:      "haversine",
	}, nil
}

func newTestSelector() *Selector {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return New(haversineEstimator{}, logger)
}

// Флот из сценария конца-в-конец: точка вызова (28.6289, 77.2065)
func testFleet() []models.Hospital {
	return []models.Hospital{
		{
			ID: "max_hospital_saket", Latitude: 28.5245, Longitude: 77.2060,
			ICUBedsAvailable: 5, ICUBedsTotal: 8, GeneralBedsAvailable: 10, GeneralBedsTotal: 12,
			Capabilities: []string{"cardiologist", "trauma_surgeon"},
		},
		{
			ID: "city_general", Latitude: 28.7041, Longitude: 77.1025,
			ICUBedsAvailable: 0, ICUBedsTotal: 4, GeneralBedsAvailable: 5, GeneralBedsTotal: 8,
			Capabilities: []string{"general_physician"},
		},
		{
			ID: "sir_ganga_ram", Latitude: 28.6358, Longitude: 77.2041,
			ICUBedsAvailable: 10, ICUBedsTotal: 12, GeneralBedsAvailable: 15, GeneralBedsTotal: 18,
			Capabilities: []string{"cardiologist", "neurologist", "pulmonologist"},
		},
		{
			ID: "fortis_escorts", Latitude: 28.6139, Longitude: 77.2090,
			ICUBedsAvailable: 15, ICUBedsTotal: 20, GeneralBedsAvailable: 20, GeneralBedsTotal: 25,
			Capabilities: []string{"cardiologist", "neurologist", "trauma_surgeon"},
		},
	}
}

func TestSelect_RedPicksNearestWithICU(t *testing.T) {
	s := newTestSelector()
	loc := geo.Point{Lat: 28.6289, Lng: 77.2065}

	ranked, err := s.Select(context.Background(), loc, models.SeverityRed, testFleet(), Options{})
	require.NoError(t, err)
	require.NotEmpty(t, ranked)

	// city_general без свободных коек реанимации отфильтрован
	for _, r := range ranked {
		assert.NotEqual(t, "city_general", r.Hospital.ID)
		assert.Equal(t, models.BedCategoryICU, r.BedCategory)
		assert.Greater(t, r.Hospital.ICUBedsAvailable, 0)
	}

	// Ближайшая к точке вызова больница с реанимацией
	assert.Equal(t, "sir_ganga_ram", ranked[0].Hospital.ID)
}

func TestSelect_GreenUsesGeneralBeds(t *testing.T) {
	s := newTestSelector()
	loc := geo.Point{Lat: 28.70, Lng: 77.10}

	ranked, err := s.Select(context.Background(), loc, models.SeverityGreen, testFleet(), Options{})
	require.NoError(t, err)

	// Для зелёного уровня city_general проходит: обычные койки есть
	ids := make([]string, 0, len(ranked))
	for _, r := range ranked {
		assert.Equal(t, models.BedCategoryGeneral, r.BedCategory)
		ids = append(ids, r.Hospital.ID)
	}
	assert.Contains(t, ids, "city_general")
	assert.Equal(t, "city_general", ranked[0].Hospital.ID)
}

func TestSelect_ICUFallbackWhenNoICUCapacityInFleet(t *testing.T) {
	s := newTestSelector()
	fleet := []models.Hospital{
		{ID: "rural_a", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 0, GeneralBedsAvailable: 3, GeneralBedsTotal: 5},
		{ID: "rural_b", Latitude: 28.62, Longitude: 77.21, ICUBedsTotal: 0, GeneralBedsAvailable: 1, GeneralBedsTotal: 4},
	}

	ranked, err := s.Select(context.Background(), geo.Point{Lat: 28.61, Lng: 77.20}, models.SeverityRed, fleet, Options{})
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	// Ни у кого нет реанимации вообще - красный уровень падает на обычные койки
	assert.Equal(t, models.BedCategoryGeneral, ranked[0].BedCategory)
}

func TestSelect_RequiredCapabilitiesFilter(t *testing.T) {
	s := newTestSelector()
	loc := geo.Point{Lat: 28.6289, Lng: 77.2065}

	ranked, err := s.Select(context.Background(), loc, models.SeverityRed, testFleet(), Options{
		RequiredCapabilities: []string{"trauma_surgeon"},
	})
	require.NoError(t, err)

	for _, r := range ranked {
		assert.True(t, r.Hospital.HasCapability("trauma_surgeon"))
	}
}

func TestSelect_NoCandidatesSignal(t *testing.T) {
	s := newTestSelector()
	fleet := []models.Hospital{
		{ID: "full_house", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 5, ICUBedsAvailable: 0, GeneralBedsTotal: 5, GeneralBedsAvailable: 0},
	}

	ranked, err := s.Select(context.Background(), geo.Point{Lat: 28.61, Lng: 77.20}, models.SeverityRed, fleet, Options{})
	assert.Nil(t, ranked)
	assert.ErrorIs(t, err, dispatch.ErrNoCandidates)
}

func TestSelect_RelaxedFilterAdmitsFullHospitals(t *testing.T) {
	s := newTestSelector()
	fleet := []models.Hospital{
		{ID: "full_house", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 5, ICUBedsAvailable: 0, GeneralBedsTotal: 5, GeneralBedsAvailable: 0},
	}

	ranked, err := s.Select(context.Background(), geo.Point{Lat: 28.61, Lng: 77.20}, models.SeverityRed, fleet, Options{
		RelaxBedFilter: true,
	})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "full_house", ranked[0].Hospital.ID)
}

func TestSelect_DeterministicTieBreaks(t *testing.T) {
	s := newTestSelector()
	// Две больницы в одной точке: одинаковое время в пути.
	// Побеждает большее число свободных коек, затем меньший id.
	fleet := []models.Hospital{
		{ID: "beta", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 10, ICUBedsAvailable: 3, GeneralBedsTotal: 5, GeneralBedsAvailable: 5},
		{ID: "alpha", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 10, ICUBedsAvailable: 7, GeneralBedsTotal: 5, GeneralBedsAvailable: 5},
		{ID: "gamma", Latitude: 28.60, Longitude: 77.20, ICUBedsTotal: 10, ICUBedsAvailable: 3, GeneralBedsTotal: 5, GeneralBedsAvailable: 5},
	}

	ranked, err := s.Select(context.Background(), geo.Point{Lat: 28.605, Lng: 77.20}, models.SeverityRed, fleet, Options{})
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, "alpha", ranked[0].Hospital.ID) // больше свободных коек
	assert.Equal(t, "beta", ranked[1].Hospital.ID)  // при равенстве - меньший id
	assert.Equal(t, "gamma", ranked[2].Hospital.ID)
}

func TestSelect_EmptyFleet(t *testing.T) {
	s := newTestSelector()
	_, err := s.Select(context.Background(), geo.Point{Lat: 28.61, Lng: 77.20}, models.SeverityYellow, nil, Options{})
	assert.ErrorIs(t, err, dispatch.ErrNoCandidates)
}
