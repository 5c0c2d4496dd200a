package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/mocks"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/platform/memstore"
	"github.com/gymdesk/gym-api/internal/service"
	"github.com/gymdesk/gym-api/internal/service/auth"
	"github.com/gymdesk/gym-api/internal/store"
	"github.com/stretchr/testify/require"
)

var (
	adminCaller   = &auth.Claims{UserID: "admin-1", Rol: domain.RoleAdmin}
	teacherCaller = &auth.Claims{UserID: "prof-1", Rol: domain.RoleTeacher}
)

// testEnv serves every handler over a fresh in-memory database.
type testEnv struct {
	ctx      context.Context
	stores   store.Stores
	metrics  *metrics.Metrics
	tokens   *mocks.MockJWTService
	router   http.Handler
	students service.StudentService
	teachers service.TeacherService
	classes  service.ClassService
	routines service.RoutineService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log, _ := logger.GetTestLogger(t)
	stores := memstore.New().Stores()
	hasher := mocks.PlainHasher{}
	tokens := &mocks.MockJWTService{
		Token:     "signed-token",
		ExpiresAt: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	env := &testEnv{
		ctx:      context.Background(),
		stores:   stores,
		metrics:  metrics.New(),
		tokens:   tokens,
		students: service.NewStudentService(stores, hasher, log),
		teachers: service.NewTeacherService(stores, hasher, log),
		classes:  service.NewClassService(stores, log),
		routines: service.NewRoutineService(stores, log),
	}

	studentH := NewStudentHandler(env.students, env.metrics)
	teacherH := NewTeacherHandler(env.teachers, env.metrics)
	adminH := NewAdminHandler(service.NewAdminService(stores, hasher, log), env.metrics)
	classH := NewClassHandler(env.classes, env.metrics)
	classH.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	routineH := NewRoutineHandler(env.routines, env.metrics)
	authH := NewAuthHandler(service.NewAuthService(stores, hasher, tokens, log), env.metrics)

	r := chi.NewRouter()
	r.Post("/api/login", authH.Login)
	r.Route("/api/alumnos", func(r chi.Router) {
		r.Get("/", studentH.List)
		r.Post("/", studentH.Create)
		r.Get("/{id}", studentH.Get)
		r.Put("/{id}", studentH.Update)
		r.Delete("/{id}", studentH.Delete)
	})
	r.Route("/api/profesores", func(r chi.Router) {
		r.Get("/", teacherH.List)
		r.Post("/", teacherH.Create)
		r.Get("/{id}", teacherH.Get)
		r.Put("/{id}", teacherH.Update)
		r.Delete("/{id}", teacherH.Delete)
	})
	r.Route("/api/admins", func(r chi.Router) {
		r.Get("/", adminH.List)
		r.Post("/", adminH.Create)
		r.Get("/{id}", adminH.Get)
		r.Put("/{id}", adminH.Update)
		r.Delete("/{id}", adminH.Delete)
	})
	r.Route("/api/clases", func(r chi.Router) {
		r.Get("/", classH.List)
		r.Post("/", classH.Create)
		r.Get("/{id}", classH.Get)
		r.Put("/{id}", classH.Update)
		r.Delete("/{id}", classH.Delete)
		r.Get("/{id}/alumnos", classH.Roster)
		r.Get("/{id}/alumnos/export", classH.ExportRoster)
		r.Post("/{id}/inscribir/{alumnoID}", classH.Enroll)
		r.Post("/{id}/desinscribir/{alumnoID}", classH.Unenroll)
	})
	r.Route("/api/rutinas", func(r chi.Router) {
		r.Get("/", routineH.List)
		r.Post("/", routineH.Create)
		r.Get("/{id}", routineH.Get)
		r.Put("/{id}", routineH.Update)
		r.Delete("/{id}", routineH.Delete)
	})
	env.router = r
	return env
}

// do sends a request as caller (nil for anonymous) and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, body string, caller *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != nil {
		req = req.WithContext(shared.WithClaims(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// createdID decodes an IDResponse and returns the id.
func createdID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp IDResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (e *testEnv) seedTeacher(t *testing.T, nombre, email string) string {
	t.Helper()
	body := `{"nombre":"` + nombre + `","apellido":"Lopez","dni":"20000000","email":"` + email + `","password":"pw"}`
	return createdID(t, e.do(t, http.MethodPost, "/api/profesores", body, adminCaller))
}

func (e *testEnv) seedStudent(t *testing.T, nombre, dni, email string) string {
	t.Helper()
	body := `{"nombre":"` + nombre + `","apellido":"Perez","dni":"` + dni + `","email":"` + email + `","password":"pw"}`
	return createdID(t, e.do(t, http.MethodPost, "/api/alumnos", body, adminCaller))
}

func (e *testEnv) seedClass(t *testing.T, nombreProf, emailProf string, capacidad int) string {
	t.Helper()
	body := `{"descripcion":"Spinning","nombreProfesor":"` + nombreProf + `","emailProfesor":"` + emailProf + `","horario":"Lun 18hs"`
	if capacidad > 0 {
		body += `,"capacidad":` + strconv.Itoa(capacidad)
	}
	body += `}`
	return createdID(t, e.do(t, http.MethodPost, "/api/clases", body, adminCaller))
}

// scrape returns the metrics exposition text.
func (e *testEnv) scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	e.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}
