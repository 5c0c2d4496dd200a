package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	rec := s.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	s.do(t, http.MethodGet, "/api/clases", "", "")

	rec := s.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gym_http_requests_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	for _, path := range []string{"/api/alumnos", "/api/profesores", "/api/admins", "/api/clases", "/api/rutinas"} {
		rec := s.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(t, http.MethodGet, "/api/alumnos", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid token")
}

func TestRolePolicy(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	adminToken := s.seedAdmin(t)

	createdID(t, s.do(t, http.MethodPost, "/api/profesores",
		`{"nombre":"Juan","apellido":"Lopez","dni":"20000000","email":"juan@example.com","password":"profpw"}`, adminToken))
	anaID := createdID(t, s.do(t, http.MethodPost, "/api/alumnos",
		`{"nombre":"Ana","apellido":"Perez","dni":"12345678","email":"ana@example.com","password":"anapw","plan":"premium"}`, adminToken))
	betoID := createdID(t, s.do(t, http.MethodPost, "/api/alumnos",
		`{"nombre":"Beto","apellido":"Gomez","dni":"22345678","email":"beto@example.com","password":"betopw"}`, adminToken))

	profToken := s.login(t, "juan@example.com", "profpw")
	anaToken := s.login(t, "ana@example.com", "anapw")

	classID := createdID(t, s.do(t, http.MethodPost, "/api/clases",
		`{"descripcion":"Spinning","nombreProfesor":"Juan","emailProfesor":"juan@example.com","horario":"Lun 18hs","capacidad":10}`, profToken))

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{name: "student reads classes", method: http.MethodGet, path: "/api/clases", token: anaToken, want: http.StatusOK},
		{name: "student reads roster", method: http.MethodGet, path: "/api/clases/" + classID + "/alumnos", token: anaToken, want: http.StatusOK},
		{name: "student cannot export roster", method: http.MethodGet, path: "/api/clases/" + classID + "/alumnos/export", token: anaToken, want: http.StatusForbidden},
		{name: "student cannot create students", method: http.MethodPost, path: "/api/alumnos", body: `{}`, token: anaToken, want: http.StatusForbidden},
		{name: "student cannot list admins", method: http.MethodGet, path: "/api/admins", token: anaToken, want: http.StatusForbidden},
		{name: "teacher cannot list admins", method: http.MethodGet, path: "/api/admins", token: profToken, want: http.StatusForbidden},
		{name: "teacher cannot create teachers", method: http.MethodPost, path: "/api/profesores", body: `{}`, token: profToken, want: http.StatusForbidden},
		{name: "teacher updates student", method: http.MethodPut, path: "/api/alumnos/" + betoID, body: `{"apellido":"Garcia"}`, token: profToken, want: http.StatusOK},
		{name: "student enrolls another", method: http.MethodPost, path: "/api/clases/" + classID + "/inscribir/" + betoID, token: anaToken, want: http.StatusForbidden},
		{name: "student enrolls self", method: http.MethodPost, path: "/api/clases/" + classID + "/inscribir/" + anaID, token: anaToken, want: http.StatusOK},
		{name: "teacher enrolls student", method: http.MethodPost, path: "/api/clases/" + classID + "/inscribir/" + betoID, token: profToken, want: http.StatusOK},
		{name: "admin lists admins", method: http.MethodGet, path: "/api/admins", token: adminToken, want: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.body, tc.token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestLoginReportsPlanAndRole(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	adminToken := s.seedAdmin(t)
	createdID(t, s.do(t, http.MethodPost, "/api/alumnos",
		`{"nombre":"Ana","apellido":"Perez","dni":"12345678","email":"ana@example.com","password":"anapw","plan":"premium"}`, adminToken))

	rec := s.do(t, http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"anapw"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"plan":"premium"`)
	assert.Contains(t, rec.Body.String(), `"rol":"alumno"`)
	assert.Contains(t, rec.Body.String(), `"user":"Ana"`)

	rec = s.do(t, http.MethodPost, "/api/login", `{"email":"ana@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRateLimited(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit.LoginMax = 2
	s := newTestServer(t, cfg)

	body := `{"email":"nadie@example.com","password":"x"}`
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/login", body, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/login", body, "").Code)

	rec := s.do(t, http.MethodPost, "/api/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	metrics := s.do(t, http.MethodGet, "/metrics", "", "").Body.String()
	assert.Contains(t, metrics, `gym_login_attempts_total{outcome="rate_limited"} 1`)
	assert.Contains(t, metrics, `gym_login_attempts_total{outcome="unknown_user"} 2`)
}
