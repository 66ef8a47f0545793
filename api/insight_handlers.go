package api

import (
	"errors"
	"net/http"

	"fairaid-guardian/database"
)

// handleGetRegionInsight generates the guardian report for one region.
// A summarizer outage affects only this endpoint; the rest of the dashboard
// keeps serving from the same snapshot.
func (s *Server) handleGetRegionInsight(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")
	if region == "" {
		respondWithError(w, http.StatusBadRequest, "region is required", nil)
		return
	}

	insight, err := s.guardian.RegionInsight(r.Context(), region)
	if err != nil {
		var notFound *database.NotFoundError
		var source *database.SourceError
		switch {
		case errors.As(err, &notFound):
			respondWithError(w, http.StatusNotFound, "unknown region: "+region, err)
		case errors.As(err, &source):
			respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		default:
			respondWithError(w, http.StatusBadGateway, "guardian summary failed for "+region, err)
		}
		return
	}

	respondJSON(w, insight)
}
