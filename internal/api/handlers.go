package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"

	"energy_community/internal/ingest"
	"energy_community/internal/kpi"
	"energy_community/internal/model"
	"energy_community/internal/ws"
)

type scenarioRequest struct {
	Goal            int             `json:"goal"`
	Context         json.RawMessage `json:"context"`
	Recommendations json.RawMessage `json:"recommendations"`
}

type buildingFailureJSON struct {
	BuildingID int    `json:"building_id"`
	Error      string `json:"error"`
}

type scenarioResponse struct {
	Context  *model.CommunityContext `json:"context"`
	Applied  []int                   `json:"applied"`
	Failures []buildingFailureJSON   `json:"failures,omitempty"`
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Context) == 0 {
		writeError(w, http.StatusBadRequest, "context is required")
		return
	}

	ctx, err := ingest.LoadContext(bytes.NewReader(req.Context))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var recs []model.Recommendation
	if len(req.Recommendations) > 0 {
		recs, err = ingest.LoadRecommendations(bytes.NewReader(req.Recommendations))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	s.Bridge.RunStarted(ws.RunScenario, ctx.ID)

	result, err := s.Scenario.Apply(ctx, req.Goal, recs)
	if err != nil {
		s.logger().Error("scenario transformation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Metrics.ScenarioRun()
	s.Metrics.BuildingFailures(len(result.Failures))
	s.Bridge.ScenarioCreated(result.Context)
	s.Bridge.RunFinished(ws.RunScenario, len(result.Context.Buildings), result.Failures, 0)

	writeJSON(w, http.StatusOK, scenarioResponse{
		Context:  result.Context,
		Applied:  result.Applied,
		Failures: failuresJSON(result.Failures),
	})
}

type indicatorsRequest struct {
	CountryID int             `json:"country_id"`
	FailFast  bool            `json:"fail_fast"`
	Context   json.RawMessage `json:"context"`
}

type indicatorsResponse struct {
	Community     map[string]model.KPIValue       `json:"community"`
	PerBuilding   map[int][]model.KPIEntry        `json:"per_building"`
	Hourly        map[int]map[string]model.Series `json:"hourly"`
	TotalDemand   *model.DemandProfile            `json:"total_demand,omitempty"`
	Failures      []buildingFailureJSON           `json:"failures,omitempty"`
	Substitutions int                             `json:"substitutions"`
}

func (s *Server) handleIndicators(w http.ResponseWriter, r *http.Request) {
	var req indicatorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Context) == 0 {
		writeError(w, http.StatusBadRequest, "context is required")
		return
	}

	ctx, err := ingest.LoadContext(bytes.NewReader(req.Context))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	countryID := req.CountryID
	if countryID == 0 {
		countryID = s.CountryID
	}

	s.Bridge.RunStarted(ws.RunIndicators, ctx.ID)

	result, err := kpi.ComputeCommunityIndicators(s.Catalogue, ctx, kpi.RunOptions{
		CountryID: countryID,
		Factors:   s.Factors,
		FailFast:  req.FailFast,
		Logger:    s.logger(),
	})
	if err != nil {
		s.logger().Error("indicator run failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Metrics.IndicatorRun()
	s.Metrics.BuildingFailures(len(result.Failures))
	s.Metrics.NullSubstitutions(result.Substitutions)

	ids := make([]int, 0, len(result.PerBuilding))
	for id := range result.PerBuilding {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.Bridge.BuildingKPIs(id, result.PerBuilding[id])
	}
	s.Bridge.CommunityKPIs(result.Community)
	s.Bridge.RunFinished(ws.RunIndicators, len(ctx.Buildings), result.Failures, result.Substitutions)

	writeJSON(w, http.StatusOK, indicatorsResponse{
		Community:     result.Community,
		PerBuilding:   result.PerBuilding,
		Hourly:        result.Hourly,
		TotalDemand:   result.TotalDemand,
		Failures:      failuresJSON(result.Failures),
		Substitutions: result.Substitutions,
	})
}

func failuresJSON(failures []kpi.BuildingFailure) []buildingFailureJSON {
	out := make([]buildingFailureJSON, 0, len(failures))
	for _, f := range failures {
		out = append(out, buildingFailureJSON{BuildingID: f.BuildingID, Error: f.Err.Error()})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
