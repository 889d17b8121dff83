package panel_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/panelsim/expertpanel/internal/config"
	panelHandler "github.com/panelsim/expertpanel/internal/handler/panel"
	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/internal/report"
	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
)

func newPanelRouter(t *testing.T) (http.Handler, *panelservice.Service) {
	t.Helper()
	cfg := &config.Config{
		Providers: config.ProvidersConfig{Primary: "anthropic", MaxTokens: 4000, MaxRetries: 3},
		Panel: config.PanelConfig{
			Verbosity:          "normal",
			MaxResponseLength:  200,
			ResponseFormat:     "paragraph",
			DiscussionStyle:    "formal",
			MaxRounds:          8,
			DefaultExpertCount: 5,
		},
		Output: config.OutputConfig{Dir: t.TempDir()},
	}

	svc := panelservice.NewService()
	orch := panelservice.NewOrchestrator(expert.NewBuiltinStore(), svc, cfg, report.NewWriter(cfg.Output.Dir))

	r := chi.NewRouter()
	panelHandler.New(orch).RegisterRoutes(r)
	return r, svc
}

func TestCreatePanelRequiresTopic(t *testing.T) {
	router, _ := newPanelRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/panels", strings.NewReader(`{"domain":"technology"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreatePanelInvalidBody(t *testing.T) {
	router, _ := newPanelRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/panels", strings.NewReader("{not json"))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestCreatePanelWithoutProviders(t *testing.T) {
	// No API keys configured, so starting a run fails before any model call.
	router, _ := newPanelRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/panels", strings.NewReader(`{"topic":"x","domain":"technology"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestListPanels(t *testing.T) {
	router, svc := newPanelRouter(t)

	if _, err := svc.CreateSession(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "seeded", "", nil, false); err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panels", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	var sessions []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&sessions); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("unexpected session count: %d", len(sessions))
	}
}

func TestGetPanelNotFound(t *testing.T) {
	router, _ := newPanelRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panels/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestGetTranscript(t *testing.T) {
	router, svc := newPanelRouter(t)
	ctx := httptest.NewRequest(http.MethodGet, "/", nil).Context()

	session, err := svc.CreateSession(ctx, "seeded", "", nil, false)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panels/"+session.ID+"/transcript", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panels/missing/transcript", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}
