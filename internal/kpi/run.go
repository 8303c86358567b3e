package kpi

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// RunOptions configures a community indicator run.
type RunOptions struct {
	CountryID int
	Factors   CitizenFactors
	// FailFast aborts the run on the first building failure instead of
	// collecting diagnostics and continuing.
	FailFast bool
	Logger   *slog.Logger
}

// BuildingFailure is one per-building diagnostic from a run.
type BuildingFailure struct {
	BuildingID int
	Err        error
}

// RunResult holds everything a community indicator run produces.
type RunResult struct {
	PerBuilding map[int][]model.KPIEntry `json:"per_building"`
	// Hourly exposes the raw consumption and demand series per building
	// alongside the KPI entries.
	Hourly        map[int]map[string]model.Series `json:"hourly"`
	Community     map[string]model.KPIValue       `json:"community"`
	TotalDemand   *model.DemandProfile            `json:"total_demand,omitempty"`
	Failures      []BuildingFailure               `json:"failures,omitempty"`
	Substitutions int                             `json:"substitutions"`
}

// ComputeCommunityIndicators recalculates every building's KPIs and the
// community aggregate for a context. Building-level failures do not
// abort the run unless FailFast is set; failed buildings are excluded
// from community sums and reported in Failures.
func ComputeCommunityIndicators(cat *catalogue.Catalogue, ctx *model.CommunityContext, opts RunOptions) (*RunResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &RunResult{
		PerBuilding: make(map[int][]model.KPIEntry),
		Hourly:      make(map[int]map[string]model.Series),
	}
	var demandProfiles []*model.DemandProfile

	for idx, b := range ctx.Buildings {
		buildingID := b.ID
		if buildingID == 0 {
			buildingID = idx + 1
		}

		entries, hourly, demand, subs, err := computeOneBuilding(cat, ctx, b, buildingID, opts)
		result.Substitutions += subs
		if err != nil {
			if opts.FailFast {
				return nil, err
			}
			logger.Error("building computation failed", "building_id", buildingID, "error", err)
			result.Failures = append(result.Failures, BuildingFailure{BuildingID: buildingID, Err: err})
			continue
		}
		result.PerBuilding[buildingID] = entries
		result.Hourly[buildingID] = hourly
		demandProfiles = append(demandProfiles, demand)
	}

	totalDemand, err := AggregateDemandProfiles(demandProfiles)
	if err != nil {
		return nil, err
	}
	result.TotalDemand = totalDemand

	community, err := AggregateCommunity(result.PerBuilding, totalDemand)
	if err != nil {
		return nil, err
	}
	result.Community = community
	return result, nil
}

func computeOneBuilding(cat *catalogue.Catalogue, ctx *model.CommunityContext, b *model.BuildingContext, buildingID int, opts RunOptions) ([]model.KPIEntry, map[string]model.Series, *model.DemandProfile, int, error) {
	if b.Consumption == nil {
		return nil, nil, nil, 0, &model.ConfigurationError{BuildingID: buildingID, Msg: "consumption profile does not exist"}
	}

	steps := ctx.TimestepCount
	if steps == 0 {
		steps = len(b.Consumption.Electricity)
		if steps == 0 {
			return nil, nil, nil, 0, &model.ConfigurationError{BuildingID: buildingID, Msg: "timestep count could not be determined"}
		}
	}

	demand, err := DeriveDemand(b)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	be, err := ComputeBuildingEnergy(cat, b, opts.CountryID, steps)
	if err != nil {
		return nil, nil, nil, 0, err
	}

	totals, err := TotalsFromSources(be.Sources, steps)
	if err != nil {
		return nil, nil, nil, be.Carriers.Substitutions, err
	}

	entries := BuildingKPIEntries(be, totals, demand, opts.Factors)

	hourly := map[string]model.Series{
		"consumption_profile_elec_consumption": b.Consumption.Electricity,
		"consumption_profile_heat_consumption": b.Consumption.Heating,
		"consumption_profile_cool_consumption": b.Consumption.Cooling,
		"consumption_profile_dhw_consumption":  b.Consumption.DHW,
		"demand_profile_electricity_demand":    demand.Electricity,
		"demand_profile_heating_demand":        demand.Heating,
		"demand_profile_cooling_demand":        demand.Cooling,
		"demand_profile_dhw_demand":            demand.DHW,
	}

	return entries, hourly, demand, be.Carriers.Substitutions, nil
}

// String implements fmt.Stringer for run summaries.
func (f BuildingFailure) String() string {
	return fmt.Sprintf("building %d: %v", f.BuildingID, f.Err)
}

// MarshalJSON flattens the wrapped error to its message.
func (f BuildingFailure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BuildingID int    `json:"building_id"`
		Error      string `json:"error"`
	}{f.BuildingID, f.Err.Error()})
}
