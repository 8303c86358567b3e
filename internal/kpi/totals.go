package kpi

import (
	"energy_community/internal/model"
)

// BuildingTotals sums every KPI source across carriers, per timestep.
type BuildingTotals struct {
	PrimaryEnergy     model.Series // kWh, renewable + non-renewable
	PrimaryRenewable  model.Series
	PrimaryNonRenew   model.Series
	HouseholdCosts    model.Series
	NonHouseholdCosts model.Series
	CO2Grams          model.Series
}

// TotalsFromSources reduces the per-carrier KPI sources of one building.
func TotalsFromSources(sources map[int]KPISource, steps int) (*BuildingTotals, error) {
	t := &BuildingTotals{
		PrimaryEnergy:     model.Zeros(steps),
		PrimaryRenewable:  model.Zeros(steps),
		PrimaryNonRenew:   model.Zeros(steps),
		HouseholdCosts:    model.Zeros(steps),
		NonHouseholdCosts: model.Zeros(steps),
		CO2Grams:          model.Zeros(steps),
	}
	for _, src := range sources {
		ren := src.PrimaryRenewable()
		nren := src.PrimaryNonRenewable()
		for _, step := range []struct {
			dst  model.Series
			src  model.Series
			what string
		}{
			{t.PrimaryRenewable, ren, "renewable primary energy"},
			{t.PrimaryNonRenew, nren, "non-renewable primary energy"},
			{t.HouseholdCosts, src.HouseholdCosts(), "household costs"},
			{t.NonHouseholdCosts, src.NonHouseholdCosts(), "non-household costs"},
			{t.CO2Grams, src.CO2(), "co2"},
		} {
			if err := model.AddInPlace(step.dst, step.src, step.what); err != nil {
				return nil, err
			}
		}
	}
	for i := range t.PrimaryEnergy {
		t.PrimaryEnergy[i] = t.PrimaryRenewable[i] + t.PrimaryNonRenew[i]
	}
	return t, nil
}

// KPI names shared between the per-building entries and the community
// aggregation.
const (
	KPIPeakHeatDemand          = "KPI_peak_heat_demand_[kWh]"
	KPIPeakDHWDemand           = "KPI_peak_dhw_demand_[kWh]"
	KPIPeakCoolingDemand       = "KPI_peak_cooling_demand_[kWh]"
	KPIPeakElecDemand          = "KPI_peak_elec_demand_[kWh]"
	KPIPeakElecConsumption     = "KPI_peak_electricity_consumption_[kWh]"
	KPIFinalEnergyGridCarrier  = "final_energy_electricity_grid"
	kpiFinalEnergyPrefix       = "final_energy_"
)

// BuildingKPIEntries assembles the ordered citizen-facing KPI list for
// one building.
func BuildingKPIEntries(be *BuildingEnergy, totals *BuildingTotals, demand *model.DemandProfile, factors CitizenFactors) []model.KPIEntry {
	co2Kg := totals.CO2Grams.Scaled(1.0 / 1000)

	entries := []model.KPIEntry{
		model.ScalarKPI(1, KPIPeakHeatDemand, demand.Heating.Peak(), "kWh"),
		model.ScalarKPI(2, KPIPeakElecDemand, be.TotalElectricityUse.Peak(), "kWh"),
		model.SeriesKPI(3, "total_primary_energy_[kWh]", totals.PrimaryEnergy, "kWh"),
		model.ScalarKPI(4, "num_members", 0, "a.u."),
		model.SeriesKPI(5, "EquivalentTVHours_[h]", factors.TVHours(totals.PrimaryEnergy), "h"),
		model.SeriesKPI(6, "EquivalentstreamingHours_[h]", factors.StreamingHours(totals.PrimaryEnergy), "h"),
		model.SeriesKPI(7, "PizzaConsumptionComparison_[pizza]", factors.Pizzas(totals.PrimaryEnergy), "pizza"),
		model.SeriesKPI(8, "BatteryUsageEstimation_[charges]", factors.BatteryCharges(totals.PrimaryEnergy), "charges"),
		model.SeriesKPI(9, "ElectricCarChargingEstimation_[charges]", factors.EVCharges(totals.PrimaryEnergy), "charges"),
		model.SeriesKPI(10, "WineBottlesProduction_[bottles]", factors.WineBottles(totals.PrimaryEnergy), "bottles"),
		model.SeriesKPI(11, "TreesRequiredForCarbonOffset_[trees]", factors.Trees(co2Kg), "trees"),
		model.SeriesKPI(12, "streamingEmissionsImpact_[hours]", factors.StreamingEmissionHours(co2Kg), "hours"),
		model.SeriesKPI(13, "CarbonEmissionsPerKilometer_[km]", factors.CarKilometers(co2Kg), "km"),
		model.SeriesKPI(14, "Total_PV_[kWh]", be.TotalPV, "kWh"),
		model.SeriesKPI(15, "Total_self_consumption", be.SelfConsumption, "a.u."),
		model.SeriesKPI(16, "Total_self_sufficiency", be.SelfSufficiency, "a.u."),
		model.SeriesKPI(17, "rate_of_self_consumption", be.RateOfSelfConsumption, "%"),
		model.SeriesKPI(18, "renewable_primary_energy_[kWh]", totals.PrimaryRenewable, "kWh"),
		model.SeriesKPI(19, "non_renewable_primary_energy_[kWh]", totals.PrimaryNonRenew, "kWh"),
		model.SeriesKPI(20, "non_households_costs_[€]", totals.NonHouseholdCosts, "€"),
		model.SeriesKPI(21, "households_costs_[€]", totals.HouseholdCosts, "€"),
		model.SeriesKPI(22, "Total_co2", totals.CO2Grams, "g"),
	}

	id := 23
	for _, acc := range be.Carriers.NonZero() {
		entries = append(entries, model.SeriesKPI(id, kpiFinalEnergyPrefix+acc.Carrier.Name, acc.Hourly, "kWh"))
		id++
	}
	return entries
}
