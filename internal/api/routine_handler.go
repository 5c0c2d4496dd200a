package api

import (
	"net/http"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/domain"
	"github.com/gymdesk/gym-api/internal/metrics"
	"github.com/gymdesk/gym-api/internal/service"
)

// RoutineHandler serves /api/rutinas.
type RoutineHandler struct {
	routines service.RoutineService
	metrics  *metrics.Metrics
}

// NewRoutineHandler creates a RoutineHandler.
func NewRoutineHandler(routines service.RoutineService, m *metrics.Metrics) *RoutineHandler {
	return &RoutineHandler{routines: routines, metrics: m}
}

// List handles GET /api/rutinas.
func (h *RoutineHandler) List(w http.ResponseWriter, r *http.Request) {
	routines, err := h.routines.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list routines")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, routines)
}

// Get handles GET /api/rutinas/{id}.
func (h *RoutineHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	rt, err := h.routines.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get routine")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, rt)
}

// Create handles POST /api/rutinas.
func (h *RoutineHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RoutineRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if req.IDProfesor == "" {
		if claims, ok := callerClaims(r); ok && claims.Rol == domain.RoleTeacher {
			req.IDProfesor = claims.UserID
		}
	}
	rt := &domain.Routine{
		IDProfesor:   req.IDProfesor,
		Descripcion:  req.Descripcion,
		NombreAlumno: req.NombreAlumno,
		DNIAlumno:    req.DNIAlumno,
		Nivel:        req.Nivel,
	}
	if err := h.routines.Create(r.Context(), rt); err != nil {
		HandleAPIError(w, r, err, "Failed to create routine")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, IDResponse{ID: rt.ID})
}

// Update handles PUT /api/rutinas/{id}.
func (h *RoutineHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	var patch domain.RoutinePatch
	if err := decodeBody(r, &patch); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.routines.Update(r.Context(), id, &patch); err != nil {
		HandleAPIError(w, r, err, "Failed to update routine")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Rutina actualizada exitosamente"})
}

// Delete handles DELETE /api/rutinas/{id}.
func (h *RoutineHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.routines.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete routine")
		return
	}
	h.metrics.Deleted(domain.EntityRoutine)
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Rutina eliminada exitosamente"})
}
