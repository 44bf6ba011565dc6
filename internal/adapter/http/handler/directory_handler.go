package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/usecase"
)

// DirectoryHandler handles patient, doctor, supplier, and treatment requests.
type DirectoryHandler struct {
	directoryUC *usecase.DirectoryUseCase
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directoryUC *usecase.DirectoryUseCase) *DirectoryHandler {
	return &DirectoryHandler{directoryUC: directoryUC}
}

// CreatePatient registers a patient and opens their account.
func (h *DirectoryHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	patient, err := h.directoryUC.CreatePatient(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create patient", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.PatientFromDomain(patient))
}

// GetPatient retrieves a patient by ID.
func (h *DirectoryHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	patient, err := h.directoryUC.GetPatient(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get patient", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PatientFromDomain(patient))
}

// ListPatients lists patients.
func (h *DirectoryHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	patients, err := h.directoryUC.ListPatients(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list patients", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PatientsFromDomain(patients))
}

// CreateDoctor registers a doctor and opens their earnings account.
func (h *DirectoryHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	doctor, err := h.directoryUC.CreateDoctor(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create doctor", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.DoctorFromDomain(doctor))
}

// GetDoctor retrieves a doctor by ID.
func (h *DirectoryHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doctor, err := h.directoryUC.GetDoctor(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get doctor", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DoctorFromDomain(doctor))
}

// ListDoctors lists doctors.
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	doctors, err := h.directoryUC.ListDoctors(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list doctors", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.DoctorsFromDomain(doctors))
}

// CreateSupplier registers a supplier and opens its payables account.
func (h *DirectoryHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	supplier, err := h.directoryUC.CreateSupplier(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create supplier", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.SupplierFromDomain(supplier))
}

// GetSupplier retrieves a supplier by ID.
func (h *DirectoryHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	supplier, err := h.directoryUC.GetSupplier(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get supplier", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SupplierFromDomain(supplier))
}

// ListSuppliers lists suppliers.
func (h *DirectoryHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	suppliers, err := h.directoryUC.ListSuppliers(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list suppliers", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.SuppliersFromDomain(suppliers))
}

// CreateTreatment defines a billable treatment with its revenue split.
func (h *DirectoryHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	treatment, err := h.directoryUC.CreateTreatment(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create treatment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.TreatmentFromDomain(treatment))
}

// GetTreatment retrieves a treatment by ID.
func (h *DirectoryHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	treatment, err := h.directoryUC.GetTreatment(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get treatment", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TreatmentFromDomain(treatment))
}

// ListTreatments lists treatments.
func (h *DirectoryHandler) ListTreatments(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	treatments, err := h.directoryUC.ListTreatments(r.Context(), limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list treatments", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TreatmentsFromDomain(treatments))
}
