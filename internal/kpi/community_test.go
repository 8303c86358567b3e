package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_community/internal/model"
)

func TestAggregateDemandProfiles(t *testing.T) {
	a := &model.DemandProfile{
		Electricity: model.Series{1, 2, 3},
		Heating:     model.Series{10, 0, 0},
		Cooling:     model.Zeros(3),
		DHW:         model.Series{1, 1, 1},
	}
	b := &model.DemandProfile{
		Electricity: model.Series{4, 5, 6},
		Heating:     model.Series{0, 20, 0},
		Cooling:     model.Zeros(3),
		DHW:         model.Series{2, 2, 2},
	}

	total, err := AggregateDemandProfiles([]*model.DemandProfile{a, nil, b})
	require.NoError(t, err)
	assert.Equal(t, model.Series{5, 7, 9}, total.Electricity)
	assert.Equal(t, model.Series{10, 20, 0}, total.Heating)
	assert.Equal(t, model.Series{3, 3, 3}, total.DHW)

	// Inputs must not be mutated by the aggregation.
	assert.Equal(t, model.Series{1, 2, 3}, a.Electricity)
}

func TestAggregateDemandProfiles_LengthMismatch(t *testing.T) {
	a := &model.DemandProfile{Electricity: model.Zeros(3), Heating: model.Zeros(3), Cooling: model.Zeros(3), DHW: model.Zeros(3)}
	b := &model.DemandProfile{Electricity: model.Zeros(4), Heating: model.Zeros(4), Cooling: model.Zeros(4), DHW: model.Zeros(4)}
	_, err := AggregateDemandProfiles([]*model.DemandProfile{a, b})
	var iv *model.InvariantViolation
	require.ErrorAs(t, err, &iv)
}

func TestAggregateCommunity_SumsScalarsAndSeries(t *testing.T) {
	perBuilding := map[int][]model.KPIEntry{
		1: {
			model.ScalarKPI(1, "KPI_peak_heat_demand_[kWh]", 100, "kWh"),
			model.SeriesKPI(3, "total_primary_energy_[kWh]", model.Series{1, 2, 3}, "kWh"),
			model.SeriesKPI(23, KPIFinalEnergyGridCarrier, model.Series{2, 2, 2}, "kWh"),
		},
		2: {
			model.ScalarKPI(1, "KPI_peak_heat_demand_[kWh]", 100, "kWh"),
			model.SeriesKPI(3, "total_primary_energy_[kWh]", model.Series{4, 5, 6}, "kWh"),
			model.SeriesKPI(23, KPIFinalEnergyGridCarrier, model.Series{1, 3, 1}, "kWh"),
		},
	}
	totalDemand := &model.DemandProfile{
		Electricity: model.Series{5, 9, 2},
		Heating:     model.Series{180, 0, 0},
		Cooling:     model.Zeros(3),
		DHW:         model.Series{0, 7, 0},
	}

	agg, err := AggregateCommunity(perBuilding, totalDemand)
	require.NoError(t, err)

	assert.Equal(t, model.Series{5, 7, 9}, agg["total_primary_energy_[kWh]"].Series)

	// Community peaks come from the aggregated demand, not from summing
	// the per-building peak scalars.
	require.NotNil(t, agg[KPIPeakHeatDemand].Scalar)
	assert.Equal(t, 180.0, *agg[KPIPeakHeatDemand].Scalar)
	assert.Equal(t, 7.0, *agg[KPIPeakDHWDemand].Scalar)
	assert.Equal(t, 9.0, *agg[KPIPeakElecDemand].Scalar)

	// Peak electricity consumption from the aggregated grid series.
	require.NotNil(t, agg[KPIPeakElecConsumption].Scalar)
	assert.Equal(t, 5.0, *agg[KPIPeakElecConsumption].Scalar)
}

func TestAggregateCommunity_NoGridSeriesSkipsPeakConsumption(t *testing.T) {
	totalDemand := &model.DemandProfile{
		Electricity: model.Zeros(2),
		Heating:     model.Zeros(2),
		Cooling:     model.Zeros(2),
		DHW:         model.Zeros(2),
	}
	agg, err := AggregateCommunity(map[int][]model.KPIEntry{}, totalDemand)
	require.NoError(t, err)
	_, ok := agg[KPIPeakElecConsumption]
	assert.False(t, ok)
}

func TestTotalsFromSources(t *testing.T) {
	carrier := &model.EnergyCarrier{ID: 12, Name: "electricity_grid"}
	factors := model.NationalFactors{PEFRen: 0.5, PEFNonRen: 1.5, CostHousehold: 0.2, CostNonHousehold: 0.1, CO2PerKWh: 100}
	sources := map[int]KPISource{
		12: {Carrier: carrier, Energy: model.Series{10, 20}, Factors: factors},
	}

	totals, err := TotalsFromSources(sources, 2)
	require.NoError(t, err)
	assert.Equal(t, model.Series{5, 10}, totals.PrimaryRenewable)
	assert.Equal(t, model.Series{15, 30}, totals.PrimaryNonRenew)
	assert.Equal(t, model.Series{20, 40}, totals.PrimaryEnergy)
	assert.Equal(t, model.Series{2, 4}, totals.HouseholdCosts)
	assert.Equal(t, model.Series{1, 2}, totals.NonHouseholdCosts)
	assert.Equal(t, model.Series{1000, 2000}, totals.CO2Grams)
}

func TestCitizenFactors_Equivalences(t *testing.T) {
	f := DefaultCitizenFactors()
	energy := model.Series{1.2}

	assert.InDelta(t, 1.2/0.12, f.TVHours(energy)[0], 1e-9)
	assert.InDelta(t, 1.2/1.125, f.Pizzas(energy)[0], 1e-9)
	assert.InDelta(t, 1.2/38, f.EVCharges(energy)[0], 1e-9)

	co2kg := model.Series{42}
	assert.InDelta(t, 2.0, f.Trees(co2kg)[0], 1e-9)
	assert.InDelta(t, 42/0.143, f.CarKilometers(co2kg)[0], 1e-9)
}

func TestComputeCommunityIndicators_CollectsFailures(t *testing.T) {
	cat := fixtureCatalogue()
	good := pvBuilding(4, 10, 5, 0.5)
	good.ID = 1
	bad := &model.BuildingContext{ID: 2} // no consumption profile

	ctx := &model.CommunityContext{
		TimestepCount: 4,
		Buildings:     []*model.BuildingContext{good, bad},
	}

	result, err := ComputeCommunityIndicators(cat, ctx, RunOptions{CountryID: 1, Factors: DefaultCitizenFactors()})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, 2, result.Failures[0].BuildingID)
	assert.Contains(t, result.PerBuilding, 1)
	assert.NotContains(t, result.PerBuilding, 2)

	// Community sums cover only the building that succeeded.
	assert.Equal(t, model.Constant(4, 10), result.TotalDemand.Electricity)
	require.Contains(t, result.Hourly, 1)
	assert.Equal(t, model.Constant(4, 10), result.Hourly[1]["consumption_profile_elec_consumption"])
}

func TestComputeCommunityIndicators_FailFast(t *testing.T) {
	cat := fixtureCatalogue()
	bad := &model.BuildingContext{ID: 2}
	ctx := &model.CommunityContext{TimestepCount: 4, Buildings: []*model.BuildingContext{bad}}

	_, err := ComputeCommunityIndicators(cat, ctx, RunOptions{CountryID: 1, FailFast: true})
	var ce *model.ConfigurationError
	require.ErrorAs(t, err, &ce)
}
