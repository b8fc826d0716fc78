package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Flarenzy/subnetcalc/internal/auth"
	"github.com/Flarenzy/subnetcalc/internal/domain"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Ping(context.Context) error {
	return s.err
}

type stubCalculator struct {
	describeFn func(context.Context, domain.DescribeInput) (domain.Calculation, error)
	splitFn    func(context.Context, domain.SplitInput) (domain.SubnetPlan, error)
}

func (s stubCalculator) Describe(ctx context.Context, input domain.DescribeInput) (domain.Calculation, error) {
	if s.describeFn == nil {
		return domain.Calculation{}, nil
	}
	return s.describeFn(ctx, input)
}

func (s stubCalculator) Split(ctx context.Context, input domain.SplitInput) (domain.SubnetPlan, error) {
	if s.splitFn == nil {
		return domain.SubnetPlan{}, nil
	}
	return s.splitFn(ctx, input)
}

type stubHistory struct {
	recordFn func(context.Context, domain.SessionID, domain.RecordInput) (domain.HistoryEntry, error)
	listFn   func(context.Context, domain.SessionID) ([]domain.HistoryEntry, int64, error)
	purgeFn  func(context.Context, domain.SessionID) error
}

func (s stubHistory) Record(ctx context.Context, id domain.SessionID, input domain.RecordInput) (domain.HistoryEntry, error) {
	if s.recordFn == nil {
		return domain.HistoryEntry{}, nil
	}
	return s.recordFn(ctx, id, input)
}

func (s stubHistory) List(ctx context.Context, id domain.SessionID) ([]domain.HistoryEntry, int64, error) {
	if s.listFn == nil {
		return nil, 0, nil
	}
	return s.listFn(ctx, id)
}

func (s stubHistory) Purge(ctx context.Context, id domain.SessionID) error {
	if s.purgeFn == nil {
		return nil
	}
	return s.purgeFn(ctx, id)
}

func newHandlerTestAPI(t *testing.T, calculator domain.CalculatorService, history domain.HistoryService, healthErr error) *API {
	t.Helper()
	sessions, err := auth.NewSessionManager([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	return NewAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		stubHealthChecker{err: healthErr},
		calculator,
		history,
		sessions,
		nil,
	)
}

func TestReadyzReturnsServiceUnavailableWhenHealthCheckFails(t *testing.T) {
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{}, context.Canceled)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestIPInfoSurfacesValidationMessage(t *testing.T) {
	api := newHandlerTestAPI(t, domain.NewCalculatorService(), stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ip-info", strings.NewReader(`{"ip":"1.2.3.256","prefix":24}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(resp.Error, "octet 4") {
		t.Fatalf("expected octet 4 error surfaced, got %q", resp.Error)
	}
}

func TestIPInfoDescribesAddressAndSetsSessionCookie(t *testing.T) {
	recorded := 0
	api := newHandlerTestAPI(t, domain.NewCalculatorService(), stubHistory{
		recordFn: func(_ context.Context, id domain.SessionID, input domain.RecordInput) (domain.HistoryEntry, error) {
			recorded++
			if id == "" {
				t.Error("expected session id on record")
			}
			if input.Kind != domain.HistoryKindIPInfo {
				t.Errorf("kind = %q", input.Kind)
			}
			return domain.HistoryEntry{}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ip-info", strings.NewReader(`{"ip":"192.168.1.10","prefix":24}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp CalculationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.NetworkID != "192.168.1.0/24" || resp.Broadcast != "192.168.1.255" {
		t.Errorf("unexpected calculation: %+v", resp)
	}
	if resp.HostMin == nil || *resp.HostMin != "192.168.1.1" {
		t.Errorf("host_min = %v", resp.HostMin)
	}
	if resp.Octets != [4]int{192, 168, 1, 10} {
		t.Errorf("octets = %v", resp.Octets)
	}
	if recorded != 1 {
		t.Errorf("expected 1 history record, got %d", recorded)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "subnet_session" || cookies[0].Value == "" {
		t.Fatalf("expected fresh session cookie, got %+v", cookies)
	}
}

func TestIPInfoDefaultsPrefixTo24(t *testing.T) {
	var gotPrefix int
	api := newHandlerTestAPI(t, stubCalculator{
		describeFn: func(_ context.Context, input domain.DescribeInput) (domain.Calculation, error) {
			gotPrefix = input.Prefix
			return domain.Calculation{}, domain.ErrInvalidInput
		},
	}, stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ip-info", strings.NewReader(`{"ip":"10.0.0.1"}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if gotPrefix != 24 {
		t.Fatalf("expected default prefix 24, got %d", gotPrefix)
	}
}

func TestIPInfoHostRangeIsNullForSlash31(t *testing.T) {
	api := newHandlerTestAPI(t, domain.NewCalculatorService(), stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/ip-info", strings.NewReader(`{"ip":"10.0.0.0","prefix":31}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if string(raw["host_min"]) != "null" || string(raw["host_max"]) != "null" {
		t.Fatalf("expected null host range, got %s - %s", raw["host_min"], raw["host_max"])
	}
}

func TestSubnettingRejectsBadCount(t *testing.T) {
	api := newHandlerTestAPI(t, domain.NewCalculatorService(), stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/subnetting", strings.NewReader(`{"network":"10.0.0.0/24","subnets":1}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestSubnettingReturnsGrid(t *testing.T) {
	api := newHandlerTestAPI(t, domain.NewCalculatorService(), stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/subnetting", strings.NewReader(`{"network":"10.0.0.0/24","subnets":3}`))
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp SubnettingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Count != 4 || resp.ChildPrefix != 26 || len(resp.Subnets) != 4 {
		t.Fatalf("unexpected plan: %+v", resp)
	}
}

func TestHistoryReturnsSessionEntries(t *testing.T) {
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{
		listFn: func(_ context.Context, id domain.SessionID) ([]domain.HistoryEntry, int64, error) {
			return []domain.HistoryEntry{
				{ID: "e1", SessionID: id, Kind: domain.HistoryKindIPInfo, Input: "10.0.0.1/24", Result: json.RawMessage(`{}`)},
			}, 5, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Count != 5 || len(resp.History) != 1 || resp.History[0].Input != "10.0.0.1/24" {
		t.Fatalf("unexpected history: %+v", resp)
	}
}

func TestUserReportsSession(t *testing.T) {
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{
		listFn: func(context.Context, domain.SessionID) ([]domain.HistoryEntry, int64, error) {
			return nil, 3, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp UserResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.SessionID == "" || resp.Lookups != 3 || resp.Authenticated {
		t.Fatalf("unexpected session info: %+v", resp)
	}
}

func TestExportOffersDownload(t *testing.T) {
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/export", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	disposition := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(disposition, "attachment; filename=") || !strings.Contains(disposition, "subnet-session-") {
		t.Fatalf("unexpected disposition: %q", disposition)
	}

	var resp ExportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Session.SessionID == "" {
		t.Fatalf("expected session in export, got %+v", resp)
	}
}

func TestLogoutPurgesHistoryAndClearsCookie(t *testing.T) {
	purged := 0
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{
		purgeFn: func(_ context.Context, id domain.SessionID) error {
			purged++
			if id == "" {
				t.Error("expected session id on purge")
			}
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purge, got %d", purged)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "subnet_session" && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected session cookie cleared")
	}
}

func TestSessionCookieIsReusedAcrossRequests(t *testing.T) {
	api := newHandlerTestAPI(t, stubCalculator{}, stubHistory{}, nil)
	router := api.Router()

	first := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	firstRec := httptest.NewRecorder()
	router.ServeHTTP(firstRec, first)

	cookies := firstRec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}

	second := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	second.AddCookie(cookies[0])
	secondRec := httptest.NewRecorder()
	router.ServeHTTP(secondRec, second)

	if len(secondRec.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie on a request with a valid session")
	}

	var firstUser, secondUser UserResponse
	if err := json.Unmarshal(firstRec.Body.Bytes(), &firstUser); err != nil {
		t.Fatalf("decode first body: %v", err)
	}
	if err := json.Unmarshal(secondRec.Body.Bytes(), &secondUser); err != nil {
		t.Fatalf("decode second body: %v", err)
	}
	if firstUser.SessionID != secondUser.SessionID {
		t.Fatalf("session changed: %s != %s", firstUser.SessionID, secondUser.SessionID)
	}
}
