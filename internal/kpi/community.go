package kpi

import (
	"sort"

	"energy_community/internal/model"
)

// AggregateDemandProfiles sums per-building demand profiles element-wise.
func AggregateDemandProfiles(profiles []*model.DemandProfile) (*model.DemandProfile, error) {
	total := &model.DemandProfile{}
	for _, p := range profiles {
		if p == nil {
			continue
		}
		var err error
		if total.Electricity, err = sumSeries(total.Electricity, p.Electricity, "electricity demand"); err != nil {
			return nil, err
		}
		if total.Heating, err = sumSeries(total.Heating, p.Heating, "heating demand"); err != nil {
			return nil, err
		}
		if total.Cooling, err = sumSeries(total.Cooling, p.Cooling, "cooling demand"); err != nil {
			return nil, err
		}
		if total.DHW, err = sumSeries(total.DHW, p.DHW, "dhw demand"); err != nil {
			return nil, err
		}
	}
	return total, nil
}

func sumSeries(acc, s model.Series, what string) (model.Series, error) {
	if acc == nil {
		return s.Clone(), nil
	}
	if err := model.AddInPlace(acc, s, what); err != nil {
		return nil, err
	}
	return acc, nil
}

// AggregateCommunity reduces per-building KPI entries into community
// totals: scalars sum, series sum element-wise, and the community peak
// indicators are appended from the aggregated demand.
func AggregateCommunity(perBuilding map[int][]model.KPIEntry, totalDemand *model.DemandProfile) (map[string]model.KPIValue, error) {
	aggregate := make(map[string]model.KPIValue)

	ids := make([]int, 0, len(perBuilding))
	for id := range perBuilding {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		for _, entry := range perBuilding[id] {
			existing, ok := aggregate[entry.Name]
			if !ok {
				v := model.KPIValue{Unit: entry.Unit}
				if entry.Scalar != nil {
					s := *entry.Scalar
					v.Scalar = &s
				} else {
					v.Series = entry.Series.Clone()
				}
				aggregate[entry.Name] = v
				continue
			}
			if entry.Scalar != nil && existing.Scalar != nil {
				sum := *existing.Scalar + *entry.Scalar
				existing.Scalar = &sum
				aggregate[entry.Name] = existing
				continue
			}
			if err := model.AddInPlace(existing.Series, entry.Series, "community KPI "+entry.Name); err != nil {
				return nil, err
			}
		}
	}

	scalar := func(v float64) *float64 { return &v }
	aggregate[KPIPeakHeatDemand] = model.KPIValue{Scalar: scalar(totalDemand.Heating.Peak()), Unit: "kWh"}
	aggregate[KPIPeakDHWDemand] = model.KPIValue{Scalar: scalar(totalDemand.DHW.Peak()), Unit: "kWh"}
	aggregate[KPIPeakCoolingDemand] = model.KPIValue{Scalar: scalar(totalDemand.Cooling.Peak()), Unit: "kWh"}
	aggregate[KPIPeakElecDemand] = model.KPIValue{Scalar: scalar(totalDemand.Electricity.Peak()), Unit: "kWh"}
	if grid, ok := aggregate[KPIFinalEnergyGridCarrier]; ok {
		aggregate[KPIPeakElecConsumption] = model.KPIValue{Scalar: scalar(grid.Series.Peak()), Unit: "kWh"}
	}
	return aggregate, nil
}
