package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// AppointmentHandler handles appointment HTTP requests.
type AppointmentHandler struct {
	appointmentUC *usecase.AppointmentUseCase
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointmentUC *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{appointmentUC: appointmentUC}
}

// Create books an appointment. A billable cost debits the patient's account.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	appointment, err := h.appointmentUC.CreateAppointment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create appointment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.AppointmentFromDomain(appointment))
}

// Get retrieves an appointment by ID.
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing appointment ID", "")
		return
	}

	appointment, err := h.appointmentUC.GetAppointment(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get appointment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AppointmentFromDomain(appointment))
}

// UpdateStatus changes an appointment's status.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing appointment ID", "")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.appointmentUC.UpdateAppointmentStatus(r.Context(), id, domain.AppointmentStatus(req.Status)); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update appointment status", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

// ListByPatient lists a patient's appointments.
func (h *AppointmentHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "id")
	if patientID == "" {
		writeError(w, http.StatusBadRequest, "missing patient ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	appointments, err := h.appointmentUC.ListAppointmentsByPatient(r.Context(), usecase.ListAppointmentsInput{
		PatientID: patientID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list appointments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AppointmentsFromDomain(appointments))
}
