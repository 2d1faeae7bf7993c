package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CCC-MF/mtb-validator/internal/catalog"
	"github.com/CCC-MF/mtb-validator/internal/domain"
	"github.com/CCC-MF/mtb-validator/internal/service"
)

type fakeConfigManager struct {
	cfg *domain.Config
}

func (f *fakeConfigManager) GetConfig() *domain.Config               { return f.cfg }
func (f *fakeConfigManager) GetDatabaseConfig() *domain.DatabaseConfig { return &f.cfg.Database }
func (f *fakeConfigManager) GetServerConfig() *domain.ServerConfig   { return &f.cfg.Server }
func (f *fakeConfigManager) GetCatalogConfig() *domain.CatalogConfig { return &f.cfg.Catalog }
func (f *fakeConfigManager) Reload() error                          { return nil }
func (f *fakeConfigManager) Validate() error                        { return nil }
func (f *fakeConfigManager) GetDatabaseConnectionString() string    { return "" }
func (f *fakeConfigManager) GetRedisConnectionString() string       { return "" }
func (f *fakeConfigManager) IsProduction() bool                     { return false }
func (f *fakeConfigManager) IsDevelopment() bool                    { return true }

func testConfigManager() domain.ConfigManager {
	return &fakeConfigManager{cfg: &domain.Config{
		Server: domain.ServerConfig{
			Host:         "localhost",
			Port:         8080,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Logging: domain.LoggingConfig{Level: "error"},
	}}
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*domain.DataQualityReport
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]*domain.DataQualityReport)}
}

func (f *fakeReportRepo) SaveReport(_ context.Context, report *domain.DataQualityReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports[report.PatientID] = report
	return nil
}

func (f *fakeReportRepo) GetReport(_ context.Context, patientID string) (*domain.DataQualityReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[patientID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) DeleteReport(_ context.Context, patientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reports[patientID]; !ok {
		return domain.ErrReportNotFound
	}
	delete(f.reports, patientID)
	return nil
}

type noopForwarder struct{}

func (noopForwarder) Forward(_ context.Context, _ *domain.MTBFile) error { return nil }

func testIntakeService() *service.IntakeService {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	catalogs := catalog.NewStaticCatalog(catalog.StaticCatalogData{})
	return service.NewIntakeService(logger, catalogs, newFakeReportRepo(), noopForwarder{})
}

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(testConfigManager(), testIntakeService())
}

func TestServer_HealthEndpoint(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_UploadMTBFile_MalformedBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mtbfile", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// An empty file breaks presence rules (Errors/Warnings) but no
// reference rule, so it carries no Fatal issue and is stored with its
// report rather than rejected.
func TestServer_UploadMTBFile_EmptyFileIsAcceptedWithReport(t *testing.T) {
	s := newTestServer()

	body, err := json.Marshal(domain.MTBFile{})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/mtbfile", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestServer_DeleteMTBFile_NotFound(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/mtbfile/unknown", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_SecurityHeadersPresent(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
