package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/golden_hour_dispatch/internal/config"
	"github.com/shenikar/golden_hour_dispatch/internal/dispatch"
	"github.com/shenikar/golden_hour_dispatch/internal/models"
	"github.com/shenikar/golden_hour_dispatch/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDispatchService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDispatchService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCreateRequest() CreateEmergencyRequest {
	return CreateEmergencyRequest{
		Location:     &LocationDTO{Lat: 28.6289, Lng: 77.2065},
		Symptoms:     []string{"chest_pain", "shortness_of_breath"},
		Vitals:       map[string]any{"heartRate": 125},
		Age:          65,
		ContactEmail: "patient@example.com",
	}
}

func TestCreateEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()

	severity := models.SeverityRed
	priority := 1
	hospitalID := "sir_ganga_ram"
	eta := 5
	snapshot := &models.EmergencySnapshot{
		ID:         1,
		Status:     models.StatusNotified,
		Severity:   &severity,
		Priority:   &priority,
		HospitalID: &hospitalID,
		EtaMinutes: &eta,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	// После декодирования JSON числовые показатели приходят как float64
	mockService.EXPECT().
		HandleEmergency(gomock.Any(), models.EmergencyInput{
			Latitude:     reqBody.Location.Lat,
			Longitude:    reqBody.Location.Lng,
			Symptoms:     reqBody.Symptoms,
			Vitals:       map[string]any{"heartRate": float64(125)},
			Age:          reqBody.Age,
			ContactEmail: reqBody.ContactEmail,
		}).
		Return(snapshot, nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "NOTIFIED", resp.Status)
	require.NotNil(t, resp.Severity)
	assert.Equal(t, "RED", *resp.Severity)
	require.NotNil(t, resp.HospitalID)
	assert.Equal(t, hospitalID, *resp.HospitalID)
}

func TestCreateEmergency_FailedPipeline(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()

	reason := dispatch.ReasonNoHospital
	snapshot := &models.EmergencySnapshot{
		ID:            2,
		Status:        models.StatusFailed,
		FailureReason: &reason,
	}

	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Return(snapshot, nil).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	// Терминальный отказ конвейера - это не ошибка запроса
	assert.Equal(t, http.StatusOK, w.Code)

	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "FAILED", resp.Status)
	require.NotNil(t, resp.FailureReason)
	assert.Equal(t, reason, *resp.FailureReason)
}

func TestCreateEmergency_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBufferString(`{"age": 65`), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateEmergency_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	reqBody.Symptoms = nil // Отсутствуют симптомы

	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Symptoms' failed on the 'required' tag")
}

func TestCreateEmergency_Busy(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()

	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Return(nil, dispatch.ErrBusy).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "dispatch already in progress")
}

func TestCreateEmergency_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := validCreateRequest()
	serviceError := errors.New("failed to handle emergency in service")

	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Return(nil, serviceError).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/emergencies", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestGetEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	severity := models.SeverityYellow
	snapshot := &models.EmergencySnapshot{
		ID:       7,
		Status:   models.StatusTriaged,
		Severity: &severity,
	}

	mockService.EXPECT().GetStatus(gomock.Any(), int64(7)).Return(snapshot, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/7", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp EmergencyResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "TRIAGED", resp.Status)
}

func TestGetEmergency_InvalidID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetStatus(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "GET", "/api/v1/emergencies/not-a-number", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid emergency ID")
}

func TestGetEmergency_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetStatus(gomock.Any(), int64(404)).Return(nil, dispatch.ErrNotFound).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/404", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "emergency not found")
}

func TestGetAssignedHospital_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	hospital := &models.Hospital{
		ID:               "sir_ganga_ram",
		Name:             "Sir Ganga Ram Hospital",
		Latitude:         28.6358,
		Longitude:        77.2041,
		ICUBedsAvailable: 10,
		ICUBedsTotal:     12,
		Capabilities:     []string{"cardiologist"},
		ContactEmail:     "er@sgrh.example.com",
	}

	mockService.EXPECT().GetAssignedHospital(gomock.Any(), int64(3)).Return(hospital, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/3/hospital", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp HospitalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, hospital.ID, resp.ID)
	assert.Equal(t, hospital.Name, resp.Name)
}

func TestGetAssignedHospital_Pending(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetAssignedHospital(gomock.Any(), int64(3)).Return(nil, dispatch.ErrPending).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/3/hospital", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestGetAssignedHospital_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetAssignedHospital(gomock.Any(), int64(404)).Return(nil, dispatch.ErrNotFound).Times(1)

	w := makeRequest(router, "GET", "/api/v1/emergencies/404/hospital", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "emergency not found")
}

func TestCompleteEmergency_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CompleteEmergency(gomock.Any(), int64(8)).Return(nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/8/complete", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCompleteEmergency_InvalidState(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	transitionErr := &dispatch.InvalidTransitionError{From: "REGISTERED", To: "COMPLETED"}

	mockService.EXPECT().CompleteEmergency(gomock.Any(), int64(8)).Return(transitionErr).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/8/complete", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "invalid status transition")
}

func TestCompleteEmergency_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().CompleteEmergency(gomock.Any(), int64(404)).Return(dispatch.ErrNotFound).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/404/complete", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "emergency not found")
}

func TestListHospitals_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	hospitals := []models.Hospital{
		{ID: "sir_ganga_ram", Name: "Sir Ganga Ram Hospital"},
		{ID: "fortis_escorts", Name: "Fortis Escorts"},
	}

	mockService.EXPECT().ListHospitals(gomock.Any()).Return(hospitals, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/hospitals", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []HospitalResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, hospitals[0].Name, resp[0].Name)
}

func TestListHospitals_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	serviceError := errors.New("failed to list hospitals")

	mockService.EXPECT().ListHospitals(gomock.Any()).Return(nil, serviceError).Times(1)

	w := makeRequest(router, "GET", "/api/v1/hospitals", nil, map[string]string{"X-API-Key": "test-api-key"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestRoutes_RequireAPIKey(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	// Без ключа ни один защищённый маршрут не доходит до сервиса
	mockService.EXPECT().HandleEmergency(gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().GetStatus(gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().GetAssignedHospital(gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().CompleteEmergency(gomock.Any(), gomock.Any()).Times(0)
	mockService.EXPECT().ListHospitals(gomock.Any()).Times(0)

	cases := []struct {
		method string
		url    string
	}{
		{"POST", "/api/v1/emergencies"},
		{"GET", "/api/v1/emergencies/1"},
		{"GET", "/api/v1/emergencies/1/hospital"},
		{"POST", "/api/v1/emergencies/1/complete"},
		{"GET", "/api/v1/hospitals"},
	}

	for _, tc := range cases {
		w := makeRequest(router, tc.method, tc.url, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s must require an API key", tc.method, tc.url)
		assert.Contains(t, w.Body.String(), "API key required")
	}
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	// Создаем Gin-роутер и добавляем middleware
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_BearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := makeRequest(router, "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
