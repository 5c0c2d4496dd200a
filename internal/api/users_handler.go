package api

import (
	"net/http"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/service"
)

// StudentHandler serves /api/alumnos.
type StudentHandler struct {
	students service.StudentService
	metrics  *metrics.Metrics
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(students service.StudentService, m *metrics.Metrics) *StudentHandler {
	return &StudentHandler{students: students, metrics: m}
}

// List handles GET /api/alumnos.
func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	students, err := h.students.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list students")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, students)
}

// Get handles GET /api/alumnos/{id}.
func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	st, err := h.students.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get student")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, st)
}

// Create handles POST /api/alumnos.
func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req StudentRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	st := &domain.Student{User: req.toDomain(), Ingreso: req.Ingreso, Plan: req.Plan}
	if err := h.students.Create(r.Context(), st); err != nil {
		HandleAPIError(w, r, err, "Failed to create student")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: st.ID})
}

// Update handles PUT /api/alumnos/{id}.
func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var patch domain.StudentPatch
	if err := decodeBody(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.students.Update(r.Context(), id, &patch); err != nil {
		HandleAPIError(w, r, err, "Failed to update student")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Alumno actualizado exitosamente"})
}

// Delete handles DELETE /api/alumnos/{id}. Routines and enrollments of the
// student are removed with it.
func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.students.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete student")
		return
	}
	h.metrics.Deleted(domain.EntityStudent)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Alumno eliminado exitosamente"})
}

// TeacherHandler serves /api/profesores.
type TeacherHandler struct {
	teachers service.TeacherService
	metrics  *metrics.Metrics
}

// NewTeacherHandler creates a TeacherHandler.
func NewTeacherHandler(teachers service.TeacherService, m *metrics.Metrics) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, metrics: m}
}

// List handles GET /api/profesores.
func (h *TeacherHandler) List(w http.ResponseWriter, r *http.Request) {
	teachers, err := h.teachers.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list teachers")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, teachers)
}

// Get handles GET /api/profesores/{id}.
func (h *TeacherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	t, err := h.teachers.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get teacher")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, t)
}

// Create handles POST /api/profesores.
func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TeacherRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	t := &domain.Teacher{User: req.toDomain(), Ingreso: req.Ingreso}
	if err := h.teachers.Create(r.Context(), t); err != nil {
		HandleAPIError(w, r, err, "Failed to create teacher")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: t.ID})
}

// Update handles PUT /api/profesores/{id}.
func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var patch domain.TeacherPatch
	if err := decodeBody(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.teachers.Update(r.Context(), id, &patch); err != nil {
		HandleAPIError(w, r, err, "Failed to update teacher")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Profesor actualizado exitosamente"})
}

// Delete handles DELETE /api/profesores/{id}. The teacher's classes are
// removed with it.
func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.teachers.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete teacher")
		return
	}
	h.metrics.Deleted(domain.EntityTeacher)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Profesor eliminado exitosamente"})
}

// AdminHandler serves /api/admins.
type AdminHandler struct {
	admins  service.AdminService
	metrics *metrics.Metrics
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(admins service.AdminService, m *metrics.Metrics) *AdminHandler {
	return &AdminHandler{admins: admins, metrics: m}
}

// List handles GET /api/admins.
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	admins, err := h.admins.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list admins")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, admins)
}

// Get handles GET /api/admins/{id}.
func (h *AdminHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	a, err := h.admins.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get admin")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, a)
}

// Create handles POST /api/admins.
func (h *AdminHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req AdminRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	a := &domain.Admin{User: req.toDomain()}
	if err := h.admins.Create(r.Context(), a); err != nil {
		HandleAPIError(w, r, err, "Failed to create admin")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: a.ID})
}

// Update handles PUT /api/admins/{id}.
func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var patch domain.AdminPatch
	if err := decodeBody(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.admins.Update(r.Context(), id, &patch); err != nil {
		HandleAPIError(w, r, err, "Failed to update admin")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Admin actualizado exitosamente"})
}

// Delete handles DELETE /api/admins/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.admins.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete admin")
		return
	}
	h.metrics.Deleted(domain.EntityAdmin)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Admin eliminado exitosamente"})
}
