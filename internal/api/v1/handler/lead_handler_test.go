package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLeadService
type MockLeadService struct {
	mock.Mock
}

func (m *MockLeadService) GenerateLeads(ctx context.Context, userID string, filters model.LeadFilters) (*service.GenerationResult, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationResult), args.Error(1)
}

func (m *MockLeadService) ListLeads(ctx context.Context, userID string, p repository.LeadListParams) ([]model.Lead, service.Pagination, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Get(1).(service.Pagination), args.Error(2)
	}
	return args.Get(0).([]model.Lead), args.Get(1).(service.Pagination), args.Error(2)
}

func (m *MockLeadService) GetLead(ctx context.Context, userID, leadID string) (*model.Lead, error) {
	args := m.Called(ctx, userID, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadService) UpdateLeadStatus(ctx context.Context, userID, leadID, status string) error {
	args := m.Called(ctx, userID, leadID, status)
	return args.Error(0)
}

func (m *MockLeadService) BulkDeleteLeads(ctx context.Context, userID string, leadIDs []string) (int64, error) {
	args := m.Called(ctx, userID, leadIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadService) ExportLeads(ctx context.Context, userID string, leadIDs []string, format string) (*service.ExportResult, error) {
	args := m.Called(ctx, userID, leadIDs, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

// testAuth injects a fixed user into the request context, standing in for
// the JWT middleware.
func testAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestMux(svc service.LeadService, userID string) *http.ServeMux {
	h := NewLeadHandler(svc, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, testAuth(userID), passthrough)
	return mux
}

func TestGenerateLeadsEndpoint(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("GenerateLeads", mock.Anything, "user-1", mock.Anything).Return(&service.GenerationResult{
		Leads:     []model.Lead{{ID: "l1", FullName: "Jane"}},
		Count:     1,
		Persisted: true,
	}, nil)

	body := `{"filters": {"industry": "Tech", "country": "USA", "jobTitle": "CEO"}}`
	req := httptest.NewRequest(http.MethodPost, "/leads/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Leads     []model.Lead `json:"leads"`
		Count     int          `json:"count"`
		Persisted bool         `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.Persisted)
}

func TestGenerateLeadsEndpointValidation(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	// Missing industry must fail before the service runs.
	body := `{"filters": {"country": "Morocco", "jobTitle": "CEO"}}`
	req := httptest.NewRequest(http.MethodPost, "/leads/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GenerateLeads", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateLeadsEndpointRateLimited(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("GenerateLeads", mock.Anything, "user-1", mock.Anything).Return(nil, service.ErrDailyLimitExceeded)

	body := `{"filters": {"industry": "Tech", "country": "USA", "jobTitle": "CEO"}}`
	req := httptest.NewRequest(http.MethodPost, "/leads/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["error"])
}

func TestGetLeadEndpointNotFound(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("GetLead", mock.Anything, "user-1", "missing-id").Return(nil, service.ErrLeadNotFound)

	req := httptest.NewRequest(http.MethodGet, "/leads/missing-id", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error": "Lead not found"}`, rec.Body.String())
}

func TestListLeadsEndpointDefaults(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("ListLeads", mock.Anything, "user-1", repository.LeadListParams{
		Page:  1,
		Limit: 20,
	}).Return([]model.Lead{}, service.Pagination{Page: 1, Limit: 20}, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestListLeadsEndpointFilters(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("ListLeads", mock.Anything, "user-1", repository.LeadListParams{
		Page:     2,
		Limit:    10,
		Search:   "acme",
		Status:   "new",
		Industry: "Tech",
		Country:  "USA",
	}).Return([]model.Lead{}, service.Pagination{Page: 2, Limit: 10, Total: 11, Pages: 2}, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads?page=2&limit=10&search=acme&status=new&industry=Tech&country=USA", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestUpdateLeadStatusEndpoint(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("UpdateLeadStatus", mock.Anything, "user-1", "l1", "contacted").Return(nil)

	req := httptest.NewRequest(http.MethodPatch, "/leads/l1/status", strings.NewReader(`{"status": "contacted"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestBulkDeleteEndpoint(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	svc.On("BulkDeleteLeads", mock.Anything, "user-1", []string{"l1", "l2"}).Return(int64(2), nil)

	req := httptest.NewRequest(http.MethodPost, "/leads/delete", strings.NewReader(`{"leadIds": ["l1", "l2"]}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"deleted": 2}`, rec.Body.String())
}

func TestExportEndpointInvalidFormat(t *testing.T) {
	svc := new(MockLeadService)
	mux := newTestMux(svc, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/leads/export", strings.NewReader(`{"leadIds": ["l1"], "format": "xml"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// Rejected by DTO validation before the service runs.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ExportLeads", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
