package handler

import (
	"net/http"
	"time"

	"github.com/curaclinic/ledger/internal/adapter/http/dto"
	"github.com/curaclinic/ledger/internal/domain"
	"github.com/curaclinic/ledger/internal/usecase"
)

// ActivityHandler serves the activity log.
type ActivityHandler struct {
	activityRepo usecase.ActivityRepository
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityRepo usecase.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{activityRepo: activityRepo}
}

// List lists activity log entries newest first, with optional filters.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ActivityFilter{
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
		Limit:        parseIntQuery(r, "limit", 50),
		Offset:       parseIntQuery(r, "offset", 0),
	}

	if v := q.Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
			return
		}
		filter.EndDate = &t
	}

	logs, err := h.activityRepo.List(r.Context(), filter)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list activity", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ActivityLogsFromDomain(logs))
}
