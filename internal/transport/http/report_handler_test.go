package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invsummary/internal/dataprocessing"
	apierrors "invsummary/internal/errors"
	mw "invsummary/internal/middleware"
	"invsummary/internal/services"
	"invsummary/internal/shared/testutil"
	"invsummary/pkg/contracts/domain"
)

// MockReportService is a mock implementation of ReportServiceInterface
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CreateSession(ctx context.Context) services.SessionInfo {
	args := m.Called()
	return args.Get(0).(services.SessionInfo)
}

func (m *MockReportService) Session(ctx context.Context, sessionID string) (services.SessionInfo, error) {
	args := m.Called(sessionID)
	return args.Get(0).(services.SessionInfo), args.Error(1)
}

func (m *MockReportService) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(sessionID).Error(0)
}

func (m *MockReportService) UploadInventory(ctx context.Context, sessionID, slot string, up services.Upload) (*services.UploadResult, error) {
	args := m.Called(sessionID, slot, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadResult), args.Error(1)
}

func (m *MockReportService) UploadRap(ctx context.Context, sessionID string, up services.Upload) (*services.UploadResult, error) {
	args := m.Called(sessionID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.UploadResult), args.Error(1)
}

func (m *MockReportService) InventorySummary(ctx context.Context, sessionID string) (*domain.InventoryReport, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryReport), args.Error(1)
}

func (m *MockReportService) InventoryDrillDown(ctx context.Context, sessionID, source, metric string) (*services.DrillDown, error) {
	args := m.Called(sessionID, source, metric)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DrillDown), args.Error(1)
}

func (m *MockReportService) RapSummary(ctx context.Context, sessionID string) (domain.RapSummary, error) {
	args := m.Called(sessionID)
	return args.Get(0).(domain.RapSummary), args.Error(1)
}

func (m *MockReportService) RapDrillDown(ctx context.Context, sessionID, metric, country string) (*services.DrillDown, error) {
	args := m.Called(sessionID, metric, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DrillDown), args.Error(1)
}

func (m *MockReportService) ExportDrillDown(ctx context.Context, dd *services.DrillDown, w io.Writer) (string, error) {
	args := m.Called(dd)
	fmt.Fprint(w, args.String(0))
	return args.String(1), args.Error(2)
}

func (m *MockReportService) InventoryWorkbook(ctx context.Context, sessionID string, w io.Writer) error {
	args := m.Called(sessionID)
	if args.Error(0) == nil {
		w.Write([]byte("PK"))
	}
	return args.Error(0)
}

func newTestRouter(t *testing.T, svc *MockReportService, maxUpload int64) http.Handler {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewReportHandler(svc, mw.NewValidator(logger), maxUpload, logger, errorHandler)

	r := chi.NewRouter()
	r.Mount("/api/sessions", handler.Routes())
	return r
}

func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decodeJSON(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestReportHandler_Sessions(t *testing.T) {
	svc := new(MockReportService)
	svc.On("CreateSession").Return(services.SessionInfo{ID: "s1"})
	svc.On("Session", "s1").Return(services.SessionInfo{ID: "s1", Inventory: []string{"HK"}}, nil)
	svc.On("Session", "gone").Return(services.SessionInfo{}, services.ErrSessionNotFound)
	svc.On("DeleteSession", "s1").Return(nil)
	svc.On("DeleteSession", "gone").Return(services.ErrSessionNotFound)
	router := newTestRouter(t, svc, 1<<20)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "create", method: http.MethodPost, path: "/api/sessions", wantStatus: http.StatusCreated, wantBody: `"id":"s1"`},
		{name: "get", method: http.MethodGet, path: "/api/sessions/s1", wantStatus: http.StatusOK, wantBody: `"inventory":["HK"]`},
		{name: "get unknown", method: http.MethodGet, path: "/api/sessions/gone", wantStatus: http.StatusNotFound, wantBody: `"session not found"`},
		{name: "delete", method: http.MethodDelete, path: "/api/sessions/s1", wantStatus: http.StatusNoContent},
		{name: "delete unknown", method: http.MethodDelete, path: "/api/sessions/gone", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
	svc.AssertExpectations(t)
}

func TestReportHandler_UploadInventory(t *testing.T) {
	isHKUpload := mock.MatchedBy(func(up services.Upload) bool {
		return up.FileName == "hk.csv" && up.Format == "csv"
	})

	tests := []struct {
		name        string
		filename    string
		contentType string
		setupMock   func(*MockReportService)
		wantStatus  int
		wantBody    string
	}{
		{
			name:     "valid upload",
			filename: "hk.csv",
			setupMock: func(m *MockReportService) {
				m.On("UploadInventory", "s1", "HK", isHKUpload).
					Return(&services.UploadResult{Source: "HK", Rows: 3, Valid: true}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"valid":true`,
		},
		{
			name:     "missing columns is still stored",
			filename: "hk.csv",
			setupMock: func(m *MockReportService) {
				m.On("UploadInventory", "s1", "HK", isHKUpload).
					Return(&services.UploadResult{Source: "HK", Valid: false, Missing: []string{"Legends"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"missing":["Legends"]`,
		},
		{
			name:     "unsupported format",
			filename: "hk.csv",
			setupMock: func(m *MockReportService) {
				m.On("UploadInventory", "s1", "HK", isHKUpload).
					Return(nil, fmt.Errorf("failed to load HK file: %w", &dataprocessing.UnsupportedFormatError{Indicator: "pdf"}))
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantBody:   apierrors.TypeUnsupportedFormat,
		},
		{
			name:     "unknown session",
			filename: "hk.csv",
			setupMock: func(m *MockReportService) {
				m.On("UploadInventory", "s1", "HK", isHKUpload).Return(nil, services.ErrSessionNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:     "reserved slot",
			filename: "hk.csv",
			setupMock: func(m *MockReportService) {
				m.On("UploadInventory", "s1", "HK", isHKUpload).Return(nil, services.ErrReservedLabel)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"slot"`,
		},
		{
			name:       "filename with path separator",
			filename:   `..\hk.csv`,
			setupMock:  func(*MockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"field":"file"`,
		},
		{
			name:       "missing file field",
			setupMock:  func(*MockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "MISSING_FILE",
		},
		{
			name:        "json body",
			filename:    "hk.csv",
			contentType: "application/json",
			setupMock:   func(*MockReportService) {},
			wantStatus:  http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			tt.setupMock(svc)
			router := newTestRouter(t, svc, 1<<20)

			body, contentType := multipartBody(t, tt.filename, testutil.HKInventoryCSV, map[string]string{"format": "csv"})
			if tt.contentType != "" {
				contentType = tt.contentType
			}
			req := httptest.NewRequest(http.MethodPut, "/api/sessions/s1/inventory/HK", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestReportHandler_UploadTooLarge(t *testing.T) {
	svc := new(MockReportService)
	router := newTestRouter(t, svc, 64)

	body, contentType := multipartBody(t, "hk.csv", strings.Repeat("x", 1024), nil)
	req := httptest.NewRequest(http.MethodPut, "/api/sessions/s1/inventory/HK", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	svc.AssertNotCalled(t, "UploadInventory", mock.Anything, mock.Anything, mock.Anything)
}

func TestReportHandler_UploadRap(t *testing.T) {
	t.Run("missing columns refused", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("UploadRap", "s1", mock.AnythingOfType("services.Upload")).
			Return(nil, &dataprocessing.MissingColumnsError{Source: "RAP", Missing: []string{"Country"}})
		router := newTestRouter(t, svc, 1<<20)

		body, contentType := multipartBody(t, "rap.csv", "Rapnet Lot #,Stock #\nL1,S1\n", nil)
		req := httptest.NewRequest(http.MethodPut, "/api/sessions/s1/rap", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		problem := decodeJSON(t, rec.Body)
		assert.Equal(t, apierrors.TypeMissingColumns, problem["type"])
		assert.Equal(t, []interface{}{"Country"}, problem["missing"])
	})

	t.Run("accepted", func(t *testing.T) {
		svc := new(MockReportService)
		svc.On("UploadRap", "s1", mock.AnythingOfType("services.Upload")).
			Return(&services.UploadResult{Source: "RAP", Rows: 6, Valid: true}, nil)
		router := newTestRouter(t, svc, 1<<20)

		body, contentType := multipartBody(t, "rap.csv", testutil.RapCSV, nil)
		req := httptest.NewRequest(http.MethodPut, "/api/sessions/s1/rap", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		data := decodeJSON(t, rec.Body)["data"].(map[string]interface{})
		assert.Equal(t, float64(6), data["rows"])
	})
}

func TestReportHandler_InventorySummary(t *testing.T) {
	report := &domain.InventoryReport{
		Summary: &domain.SummaryTable{
			Columns: []string{"Total Stones"},
			Rows: []domain.SummaryRow{
				{Label: "HK", Counts: domain.Counts{"Total Stones": 3}},
				{Label: "Total", Counts: domain.Counts{"Total Stones": 3}},
			},
		},
		ForWeb:   &domain.SummaryTable{},
		Rejected: []domain.SourceError{{Source: "USA", Message: "missing required columns: Legends", Missing: []string{"Legends"}}},
	}

	svc := new(MockReportService)
	svc.On("InventorySummary", "s1").Return(report, nil)
	svc.On("InventorySummary", "empty").Return(nil, services.ErrNoData)
	router := newTestRouter(t, svc, 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/inventory/summary", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rejected":[{"source":"USA"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/empty/inventory/summary", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_DATA")
}

func TestReportHandler_InventoryDrillDown(t *testing.T) {
	dd := &services.DrillDown{
		Source:  "HK",
		Metric:  "NFW",
		Columns: []string{"Item CD", "Not for Web"},
		Records: []domain.Record{
			{Source: "HK", Values: map[string]any{"Item CD": "A1", "Not for Web": true}},
			{Source: "HK", Values: map[string]any{"Item CD": "A3", "Not for Web": true}},
		},
		Count: 2,
	}

	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockReportService)
		wantStatus int
		wantCount  float64
		wantBody   string
	}{
		{
			name:  "records and count",
			query: "source=hk&metric=NFW",
			setupMock: func(m *MockReportService) {
				m.On("InventoryDrillDown", "s1", "hk", "NFW").Return(dd, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:       "missing metric",
			query:      "source=HK",
			setupMock:  func(*MockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "metric is required",
		},
		{
			name:       "unknown source",
			query:      "source=UK&metric=NFW",
			setupMock:  func(*MockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "source must be one of",
		},
		{
			name:  "source not uploaded",
			query: "source=USA&metric=NFW",
			setupMock: func(m *MockReportService) {
				m.On("InventoryDrillDown", "s1", "USA", "NFW").Return(nil, services.ErrSourceNotLoaded)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "SOURCE_NOT_LOADED",
		},
		{
			name:  "rejected source",
			query: "source=IND&metric=NFW",
			setupMock: func(m *MockReportService) {
				m.On("InventoryDrillDown", "s1", "IND", "NFW").
					Return(nil, &dataprocessing.MissingColumnsError{Source: "IND", Missing: []string{"Legends"}})
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockReportService)
			tt.setupMock(svc)
			router := newTestRouter(t, svc, 1<<20)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/inventory/drilldown?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantCount > 0 {
				body := decodeJSON(t, rec.Body)
				assert.Equal(t, tt.wantCount, body["count"])
				assert.Len(t, body["data"], int(tt.wantCount))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestReportHandler_InventoryExport(t *testing.T) {
	dd := &services.DrillDown{Source: "HK", Metric: "NFW Memo", Count: 1}
	svc := new(MockReportService)
	svc.On("InventoryDrillDown", "s1", "HK", "NFW Memo").Return(dd, nil)
	svc.On("ExportDrillDown", dd).Return("Item CD\nA3\n", "NFW Memo_HK_data.csv", nil)
	router := newTestRouter(t, svc, 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/inventory/export?source=HK&metric=NFW%20Memo", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, csvContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="NFW Memo_HK_data.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Item CD\nA3\n", rec.Body.String())
	svc.AssertExpectations(t)
}

func TestReportHandler_InventoryWorkbook(t *testing.T) {
	svc := new(MockReportService)
	svc.On("InventoryWorkbook", "s1").Return(nil)
	router := newTestRouter(t, svc, 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions/s1/inventory/summary.xlsx", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "inventory_summary.xlsx")
}

func TestReportHandler_Rap(t *testing.T) {
	summary := domain.RapSummary{Source: "RAP", TotalCount: 5, HongKongCount: 2}
	byCountry := &services.DrillDown{Source: "RAP", Metric: "India", Count: 1}
	byMetric := &services.DrillDown{Source: "RAP", Metric: "Hong Kong Count", Count: 2}
	byPaddedCountry := &services.DrillDown{Source: "RAP", Metric: "India ", Count: 3}

	svc := new(MockReportService)
	svc.On("RapSummary", "s1").Return(summary, nil)
	svc.On("RapSummary", "s2").Return(domain.RapSummary{}, services.ErrSourceNotLoaded)
	svc.On("RapDrillDown", "s1", "", "India").Return(byCountry, nil)
	svc.On("RapDrillDown", "s1", "Hong Kong Count", "").Return(byMetric, nil)
	svc.On("RapDrillDown", "s1", "", "India ").Return(byPaddedCountry, nil)
	svc.On("RapDrillDown", "s2", "", "India").Return(nil, services.ErrSourceNotLoaded)
	svc.On("ExportDrillDown", byMetric).Return("Stock #\n", "Hong Kong Count_RAP_data.csv", nil)
	router := newTestRouter(t, svc, 1<<20)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "summary", path: "/api/sessions/s1/rap/summary", wantStatus: http.StatusOK, wantBody: `"hong_kong_count":2`},
		{name: "summary without upload", path: "/api/sessions/s2/rap/summary", wantStatus: http.StatusNotFound},
		{name: "country drill-down", path: "/api/sessions/s1/rap/drilldown?country=India", wantStatus: http.StatusOK, wantBody: `"count":1`},
		{name: "country keeps surrounding spaces", path: "/api/sessions/s1/rap/drilldown?country=India%20", wantStatus: http.StatusOK, wantBody: `"count":3`},
		{name: "country without upload", path: "/api/sessions/s2/rap/drilldown?country=India", wantStatus: http.StatusNotFound, wantBody: `"details":"RAP"`},
		{name: "metric drill-down", path: "/api/sessions/s1/rap/drilldown?metric=Hong%20Kong%20Count", wantStatus: http.StatusOK, wantBody: `"count":2`},
		{name: "metric and country", path: "/api/sessions/s1/rap/drilldown?metric=Total%20Count&country=India", wantStatus: http.StatusBadRequest},
		{name: "neither", path: "/api/sessions/s1/rap/drilldown", wantStatus: http.StatusBadRequest},
		{name: "export", path: "/api/sessions/s1/rap/export?metric=Hong%20Kong%20Count", wantStatus: http.StatusOK, wantBody: "Stock #"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
	svc.AssertExpectations(t)
}
