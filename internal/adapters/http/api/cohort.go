package api

import (
	"context"
	"net/http"

	"github.com/okian/ghostboard/internal/domain/types"
)

// CohortDependencies exposes the raw weekly cohort.
type CohortDependencies interface {
	Cohort(ctx context.Context, packID int) ([]types.Ghost, string)
}

// CohortHandler handles cohort requests.
type CohortHandler struct {
	deps CohortDependencies
}

// NewCohortHandler creates a new cohort handler.
func NewCohortHandler(deps CohortDependencies) *CohortHandler {
	return &CohortHandler{deps: deps}
}

type cohortResponse struct {
	SeedKey string        `json:"seed_key"`
	Ghosts  []types.Ghost `json:"ghosts"`
}

// HandleGetCohort handles GET /cohort?pack_id=N requests.
func (h *CohortHandler) HandleGetCohort(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_cohort"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	packID, err := intParam(r, "pack_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	ghosts, key := h.deps.Cohort(r.Context(), packID)
	writeJSON(w, http.StatusOK, cohortResponse{SeedKey: key, Ghosts: ghosts})
}
