package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/export"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/service"
)

// ClassHandler serves /api/clases, including enrollment and rosters.
type ClassHandler struct {
	classes service.ClassService
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewClassHandler creates a ClassHandler.
func NewClassHandler(classes service.ClassService, m *metrics.Metrics) *ClassHandler {
	return &ClassHandler{classes: classes, metrics: m, now: time.Now}
}

// List handles GET /api/clases.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list classes")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, classes)
}

// Get handles GET /api/clases/{id}.
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	c, err := h.classes.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, c)
}

// Create handles POST /api/clases.
func (h *ClassHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ClassRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	c := &domain.Class{
		Descripcion:       req.Descripcion,
		NombreProfesor:    req.NombreProfesor,
		EmailProfesor:     req.EmailProfesor,
		Horario:           req.Horario,
		Capacidad:         req.Capacidad,
		AlumnosInscriptos: []string{},
	}
	if err := h.classes.Create(r.Context(), c); err != nil {
		HandleAPIError(w, r, err, "Failed to create class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: c.ID})
}

// Update handles PUT /api/clases/{id}.
func (h *ClassHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var patch domain.ClassPatch
	if err := decodeBody(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.classes.Update(r.Context(), id, &patch); err != nil {
		HandleAPIError(w, r, err, "Failed to update class")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Clase actualizada exitosamente"})
}

// Delete handles DELETE /api/clases/{id}.
func (h *ClassHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.classes.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete class")
		return
	}
	h.metrics.Deleted(domain.EntityClass)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Clase borrada correctamente"})
}

// enrollmentTarget extracts the class and student ids and checks that a
// student caller only acts on their own enrollment.
func enrollmentTarget(r *http.Request) (classID, studentID string, err error) {
	if classID, err = getPathID(r, "id"); err != nil {
		return "", "", err
	}
	if studentID, err = getPathID(r, "alumnoID"); err != nil {
		return "", "", err
	}
	claims, ok := callerClaims(r)
	if !ok {
		return "", "", errForbidden
	}
	if claims.Rol == domain.RoleStudent && claims.UserID != studentID {
		return "", "", errForbidden
	}
	return classID, studentID, nil
}

// Enroll handles POST /api/clases/{id}/inscribir/{alumnoID}.
func (h *ClassHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	classID, studentID, err := enrollmentTarget(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	err = h.classes.Enroll(r.Context(), classID, studentID)
	h.metrics.Enrollment("enroll", outcomeOf(err))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to enroll student")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Alumno %s inscrito a la clase %s", studentID, classID),
	})
}

// Unenroll handles POST /api/clases/{id}/desinscribir/{alumnoID}.
func (h *ClassHandler) Unenroll(w http.ResponseWriter, r *http.Request) {
	classID, studentID, err := enrollmentTarget(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	err = h.classes.Unenroll(r.Context(), classID, studentID)
	h.metrics.Enrollment("unenroll", outcomeOf(err))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to unenroll student")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Alumno %s desinscrito de la clase %s", studentID, classID),
	})
}

// Roster handles GET /api/clases/{id}/alumnos.
func (h *ClassHandler) Roster(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	_, students, err := h.classes.Roster(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list enrolled students")
		return
	}
	resp := RosterResponse{Alumnos: students}
	if len(students) == 0 {
		resp.Message = "No hay alumnos inscriptos en esta clase"
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ExportRoster handles GET /api/clases/{id}/alumnos/export and returns the
// roster as an .xlsx workbook.
func (h *ClassHandler) ExportRoster(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	c, students, err := h.classes.Roster(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to export roster")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteRoster(&buf, c, students); err != nil {
		HandleAPIError(w, r, err, "Failed to export roster")
		return
	}

	logger.FromContext(r.Context()).Info("roster exported",
		"class_id", c.ID, "students", len(students), "bytes", buf.Len())

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.RosterFilename(c, h.now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
