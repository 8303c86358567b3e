package kpi

import (
	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// BuildingEnergy is the result of one building's energy computation.
type BuildingEnergy struct {
	TotalPV               model.Series
	SelfConsumption       model.Series
	RateOfSelfConsumption model.Series // percent, 0 where no PV output
	SelfSufficiency       model.Series // percent, 0 where no electricity use
	GridConsumption       model.Series
	TotalElectricityUse   model.Series
	Carriers              *AccumulatorSet
	Sources               map[int]KPISource // keyed by carrier id
}

// ComputeBuildingEnergy runs the per-building energy accounting: heat
// pump loads feed total electricity use, fuel systems feed per-carrier
// accumulators, direct-electric assets produce on-site generation, and
// the residual grid draw always lands on the grid carrier.
func ComputeBuildingEnergy(cat *catalogue.Catalogue, b *model.BuildingContext, countryID, steps int) (*BuildingEnergy, error) {
	if b.Consumption == nil {
		return nil, &model.ConfigurationError{BuildingID: b.ID, Msg: "consumption profile does not exist"}
	}

	set := NewAccumulatorSet(cat, steps)

	elec, subs := b.Consumption.Electricity.Sanitize()
	set.Substitutions += subs
	if err := elec.CheckLen(steps, "electricity consumption"); err != nil {
		return nil, err
	}
	total := elec.Clone()

	// Heat-pump assets: their electrical input joins the building load,
	// and they mark their role as satisfied so the matching slot's
	// consumption is not double-counted below.
	satisfied := make(map[catalogue.Role]bool)
	for _, asset := range b.Assets {
		if !catalogue.IsHeatPump(asset.GenerationSystemID) {
			continue
		}
		if asset.Availability != nil {
			input, n := asset.Availability.Input1.Sanitize()
			set.Substitutions += n
			if err := model.AddInPlace(total, input, "asset "+asset.Name+" input"); err != nil {
				return nil, err
			}
		}
		satisfied[catalogue.RoleOf(asset.GenerationSystemID)] = true
	}

	// Slot systems not covered by an explicit asset.
	for _, slot := range model.ThermalSlots {
		if b.Profile == nil {
			break
		}

		sid := b.Profile.SystemID(slot)
		if sid == nil {
			continue
		}
		cons, n := b.Consumption.BySlot(slot).Sanitize()
		set.Substitutions += n
		if err := cons.CheckLen(steps, string(slot)+" consumption"); err != nil {
			return nil, err
		}

		role, _ := catalogue.HeatPumpRoleForSlot(slot)
		if catalogue.RoleOf(*sid) == role {
			if !satisfied[role] {
				if err := model.AddInPlace(total, cons, string(slot)+" heat pump load"); err != nil {
					return nil, err
				}
			}
			continue
		}
		if satisfied[role] {
			continue
		}
		if sys := b.Profile.System(slot); sys != nil {
			if err := set.Add(sys.CarrierID, cons); err != nil {
				return nil, err
			}
		}
	}

	// Fuel-burning assets: availability × capacity charged to the
	// carrier from the asset's catalogue entry.
	for _, asset := range b.Assets {
		if catalogue.IsHeatPump(asset.GenerationSystemID) ||
			catalogue.RoleOf(asset.GenerationSystemID) == catalogue.RoleDirectElectric {
			continue
		}
		if asset.Availability == nil {
			continue
		}
		sys, err := cat.System(asset.GenerationSystemID)
		if err != nil {
			return nil, err
		}
		input, n := asset.Availability.Input1.Sanitize()
		set.Substitutions += n
		if err := set.Add(sys.CarrierID, input.Scaled(asset.PMaxMaxScalar)); err != nil {
			return nil, err
		}
	}

	// On-site generation.
	totalPV := model.Zeros(steps)
	hasGeneration := false
	for _, asset := range b.Assets {
		if catalogue.RoleOf(asset.GenerationSystemID) != catalogue.RoleDirectElectric {
			continue
		}
		hasGeneration = true
		if asset.Availability == nil {
			continue
		}
		avail, n := asset.Availability.Input1.Sanitize()
		set.Substitutions += n
		if err := model.AddInPlace(totalPV, avail.Scaled(asset.PMaxMaxScalar), "asset "+asset.Name+" production"); err != nil {
			return nil, err
		}
	}

	result := &BuildingEnergy{
		TotalElectricityUse: total,
		TotalPV:             totalPV,
		Carriers:            set,
	}

	if hasGeneration {
		selfCons, err := model.MinElementwise(total, totalPV, "self consumption")
		if err != nil {
			return nil, err
		}
		result.SelfConsumption = selfCons
		result.RateOfSelfConsumption = ratio(selfCons, totalPV)
		result.SelfSufficiency = ratio(selfCons, total)
		grid := make(model.Series, steps)
		for i := range grid {
			grid[i] = total[i] - selfCons[i]
		}
		result.GridConsumption = grid
	} else {
		result.GridConsumption = total.Clone()
		result.SelfConsumption = model.Zeros(steps)
		result.RateOfSelfConsumption = model.Zeros(steps)
		result.SelfSufficiency = model.Zeros(steps)
	}

	// The grid carrier always receives the residual draw.
	if err := set.Add(catalogue.GridCarrierID, result.GridConsumption); err != nil {
		return nil, err
	}

	result.Sources = make(map[int]KPISource)
	for _, a := range set.All() {
		if !a.Carrier.Final {
			continue
		}
		factors, ok := a.Carrier.FactorsFor(countryID)
		if !ok {
			continue
		}
		result.Sources[a.Carrier.ID] = KPISource{Carrier: a.Carrier, Energy: a.Hourly, Factors: factors}
	}
	return result, nil
}

// ratio returns 100·num/den element-wise, 0 where den is 0.
func ratio(num, den model.Series) model.Series {
	out := make(model.Series, len(num))
	for i := range num {
		if den[i] > 0 {
			out[i] = num[i] / den[i] * 100
		}
	}
	return out
}
