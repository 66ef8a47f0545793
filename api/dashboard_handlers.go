package api

import (
	"net/http"

	"fairaid-guardian/helpers"
)

// Dashboard API Handlers

// handleGetKPIs returns the headline tile values with display formatting
func (s *Server) handleGetKPIs(w http.ResponseWriter, r *http.Request) {
	snap, err := s.guardian.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	response := map[string]interface{}{
		"kpis": snap.KPIs,
		"display": map[string]string{
			"total_distributed":     helpers.FormatUSD(snap.KPIs.TotalDistributed),
			"beneficiaries_reached": helpers.FormatCount(snap.KPIs.BeneficiariesReached),
			"avg_aid_per_person":    helpers.FormatUSD(snap.KPIs.AvgAidPerPerson),
		},
		"source_version": snap.SourceVersion,
		"generated_at":   snap.GeneratedAt,
	}

	respondJSON(w, response)
}

// handleGetCoverage returns the per-region coverage table
func (s *Server) handleGetCoverage(w http.ResponseWriter, r *http.Request) {
	snap, err := s.guardian.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"data":  snap.Coverage,
		"count": len(snap.Coverage),
	})
}

// handleGetFairness returns the fairness analysis table, optionally
// filtered to a single region
func (s *Server) handleGetFairness(w http.ResponseWriter, r *http.Request) {
	snap, err := s.guardian.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	rows := snap.Fairness
	if region := r.URL.Query().Get("region"); region != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if row.Region == region {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	respondJSON(w, map[string]interface{}{
		"data":  rows,
		"count": len(rows),
	})
}

// handleGetAnomalies returns the active risk list
func (s *Server) handleGetAnomalies(w http.ResponseWriter, r *http.Request) {
	snap, err := s.guardian.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"data":  snap.Anomalies,
		"count": len(snap.Anomalies),
	})
}

// handleGetRegions returns the region list for the sidebar filter
func (s *Server) handleGetRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := s.guardian.Regions(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"data":  regions,
		"count": len(regions),
	})
}

// handleGetRecords returns the raw disbursement preview
func (s *Server) handleGetRecords(w http.ResponseWriter, r *http.Request) {
	minLimit, maxLimit := 1, 500
	limit := getIntParam(r, "limit", 100, &minLimit, &maxLimit)

	records, total, err := s.guardian.RecordsPreview(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"data":  records,
		"count": len(records),
		"total": total,
		"limit": limit,
	})
}

// handleForceRefresh drops the cached snapshot so the next read recomputes
func (s *Server) handleForceRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.guardian.Invalidate(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "failed to invalidate snapshot", err)
		return
	}

	snap, err := s.guardian.Refresh(r.Context())
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "record source unavailable", err)
		return
	}

	respondJSON(w, map[string]interface{}{
		"status":         "refreshed",
		"source_version": snap.SourceVersion,
		"generated_at":   snap.GeneratedAt,
	})
}

// handleHealth reports service liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]interface{}{
		"status":      "ok",
		"llm_enabled": s.llmEnabled,
	})
}
