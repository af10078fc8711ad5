package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studydash/internal/dto"
	"github.com/noah-isme/studydash/internal/kpi"
	"github.com/noah-isme/studydash/internal/middleware"
	"github.com/noah-isme/studydash/internal/models"
	"github.com/noah-isme/studydash/internal/service"
	appErrors "github.com/noah-isme/studydash/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *appErrors.Error       `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

type fakeDashboardSrv struct {
	resp      *dto.DashboardResponse
	err       error
	programID int64
}

func (f *fakeDashboardSrv) Summary(_ context.Context, programID int64) (*dto.DashboardResponse, error) {
	f.programID = programID
	return f.resp, f.err
}

func TestDashboardHandlerRejectsInvalidProgramID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{}
	handler := NewDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/programs/abc/dashboard", nil)
	c.Params = gin.Params{{Key: "programId", Value: "abc"}}

	handler.Summary(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, rec).Error.Code)
	assert.Zero(t, srv.programID)
}

func TestDashboardHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{resp: &dto.DashboardResponse{
		ProgramID:   3,
		ProgramName: "AKI",
		GeneratedOn: models.NewDate(2026, time.June, 1),
		KPIs:        kpi.DashboardKPIs{TargetCredits: 180, CompletedCredits: 45},
	}}
	router := gin.New()
	router.Use(middleware.WithResponseMeta())
	router.GET("/programs/:programId/dashboard", NewDashboardHandler(srv).Summary)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/3/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decode(t, rec)
	assert.Equal(t, int64(3), srv.programID)
	assert.Equal(t, "AKI", envelope.Data["program_name"])
	assert.Equal(t, "2026-06-01", envelope.Meta["generated_on"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	kpis := envelope.Data["kpis"].(map[string]interface{})
	assert.Equal(t, float64(180), kpis["target_credits"])
	assert.Nil(t, kpis["weighted_average_grade"])
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestDashboardHandlerMapsServiceErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]struct {
		err    error
		status int
	}{
		"not found": {appErrors.Clone(appErrors.ErrNotFound, "program not found"), http.StatusNotFound},
		"internal":  {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			router := gin.New()
			router.GET("/programs/:programId/dashboard", NewDashboardHandler(&fakeDashboardSrv{err: tc.err}).Summary)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/1/dashboard", nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status, decode(t, rec).Error.Status)
		})
	}
}

type fakeEnrollmentSrv struct {
	lastLimit int
	created   service.EnrollmentRequest
	err       error
}

func (f *fakeEnrollmentSrv) ListRecent(_ context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error) {
	f.lastLimit = limit
	return []models.EnrollmentDetail{{Enrollment: models.Enrollment{ID: 1, ProgramID: programID}}}, f.err
}

func (f *fakeEnrollmentSrv) Get(_ context.Context, programID, id int64) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id, ProgramID: programID}, f.err
}

func (f *fakeEnrollmentSrv) Create(_ context.Context, programID int64, req service.EnrollmentRequest) (*models.Enrollment, error) {
	f.created = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Enrollment{ID: 9, ProgramID: programID, ModuleID: req.ModuleID, ActualDate: req.ActualDate}, nil
}

func (f *fakeEnrollmentSrv) Update(_ context.Context, programID, id int64, req service.EnrollmentRequest) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id, ProgramID: programID}, f.err
}

func (f *fakeEnrollmentSrv) Delete(context.Context, int64, int64) error {
	return f.err
}

func enrollmentRouter(srv enrollmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewEnrollmentHandler(srv)
	router := gin.New()
	router.GET("/programs/:programId/enrollments", h.List)
	router.POST("/programs/:programId/enrollments", h.Create)
	router.DELETE("/programs/:programId/enrollments/:id", h.Delete)
	return router
}

func TestEnrollmentHandlerListLimit(t *testing.T) {
	srv := &fakeEnrollmentSrv{}
	router := enrollmentRouter(srv)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/1/enrollments?limit=25", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 25, srv.lastLimit)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/1/enrollments?limit=-3", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnrollmentHandlerCreateParsesDates(t *testing.T) {
	srv := &fakeEnrollmentSrv{}
	router := enrollmentRouter(srv)

	body := `{"module_id": 4, "actual_date": "04.10.2025", "actual_grade": 1.7, "target_date": null}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/programs/1/enrollments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "2025-10-04", srv.created.ActualDate.String())
	assert.False(t, srv.created.TargetDate.Valid)
	assert.Equal(t, 1.7, srv.created.ActualGrade.Float64)
	assert.Equal(t, "2025-10-04", decode(t, rec).Data["actual_date"])
}

func TestEnrollmentHandlerCreateRejectsMalformedJSON(t *testing.T) {
	srv := &fakeEnrollmentSrv{}
	router := enrollmentRouter(srv)

	for _, body := range []string{`{"module_id":`, `{"module_id": 1, "actual_date": "31.02.2025"}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/programs/1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestEnrollmentHandlerDelete(t *testing.T) {
	router := enrollmentRouter(&fakeEnrollmentSrv{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/programs/1/enrollments/2", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	router = enrollmentRouter(&fakeEnrollmentSrv{err: appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/programs/1/enrollments/2", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeExportSrv struct {
	format service.ExportFormat
}

func (f *fakeExportSrv) Render(_ context.Context, programID int64, format service.ExportFormat) (*service.ExportResult, error) {
	f.format = format
	return &service.ExportResult{Filename: "report.csv", ContentType: format.ContentType(), Format: format, Body: []byte("a,b\n")}, nil
}

func TestExportHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeExportSrv{}
	router := gin.New()
	router.GET("/programs/:programId/export", NewExportHandler(srv).Download)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/1/export", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatCSV, srv.format)
	assert.Equal(t, `attachment; filename="report.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "a,b\n", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/programs/1/export?format=docx", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingPinger struct{ err error }

func (p failingPinger) PingContext(context.Context) error { return p.err }

func TestMetricsHandlerReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ready", NewMetricsHandler(nil, failingPinger{}).Ready)
	router.GET("/ready-down", NewMetricsHandler(nil, failingPinger{err: errors.New("closed")}).Ready)
	router.GET("/metrics", NewMetricsHandler(nil, nil).Prometheus)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready-down", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
