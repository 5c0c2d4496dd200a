package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gymdesk/gym-api/internal/config"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "debug", ShutdownTimeoutSeconds: 1},
		Database: config.DatabaseConfig{Driver: "memory", TimeoutSeconds: 1},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-that-is-at-least-32-bytes-long",
			TokenLifetimeMinutes: 60,
			BcryptCost:           4,
		},
		RateLimit: config.RateLimitConfig{LoginMax: 100, LoginWindowSeconds: 60},
	}
}

// testServer wires a full application over an in-memory database.
type testServer struct {
	app     *application
	handler http.Handler
	db      *memstore.DB
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	l, _ := logger.GetTestLogger(t)
	db := memstore.New()
	app, err := newApplication(context.Background(), cfg, l, db)
	require.NoError(t, err)
	return &testServer{app: app, handler: app.setupRouter(), db: db}
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/login", `{"email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) seedAdmin(t *testing.T) string {
	t.Helper()
	a := &domain.Admin{User: domain.User{
		Nombre: "Root", Apellido: "Admin", DNI: "30000000",
		Email: "root@example.com", Password: "rootpw",
	}}
	require.NoError(t, s.app.adminService.Create(context.Background(), a))
	return s.login(t, "root@example.com", "rootpw")
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func TestNewApplicationRejectsShortSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"
	l, _ := logger.GetTestLogger(t)
	_, err := newApplication(context.Background(), cfg, l, memstore.New())
	assert.Error(t, err)
}

func TestNewApplicationWithoutRateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit.LoginMax = 0
	s := newTestServer(t, cfg)
	assert.Nil(t, s.app.loginLimiter)
}

func TestReconcileOnce(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	ctx := context.Background()
	stores := s.db.Stores()

	orphan := &domain.Routine{IDProfesor: "p1", Descripcion: "Piernas", NombreAlumno: "Nadie", DNIAlumno: "99999999"}
	require.NoError(t, stores.Routines.Create(ctx, orphan))

	require.NoError(t, s.app.reconcileOnce(ctx))

	routines, err := stores.Routines.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, routines)

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	assert.Contains(t, rec.Body.String(), `gym_reconcile_repairs_total{kind="routines"} 1`)
}

func TestReconcileOnceDryRun(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Reconcile.DryRun = true
	s := newTestServer(t, cfg)
	ctx := context.Background()
	stores := s.db.Stores()

	orphan := &domain.Routine{IDProfesor: "p1", Descripcion: "Piernas", NombreAlumno: "Nadie", DNIAlumno: "99999999"}
	require.NoError(t, stores.Routines.Create(ctx, orphan))

	require.NoError(t, s.app.reconcileOnce(ctx))

	routines, err := stores.Routines.List(ctx)
	require.NoError(t, err)
	assert.Len(t, routines, 1)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Server.Port = 0
	s := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, s.app.Run(ctx))
}
