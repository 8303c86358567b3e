// Package kpi converts hourly consumption and production series into
// per-building and per-community performance indicators.
package kpi

import "energy_community/internal/model"

// DeriveDemand returns the building's end-use demand profile. An
// existing profile is returned unchanged. Otherwise demand is derived
// from the consumption profile and the assigned systems' fuel yields:
// electricity demand equals electricity consumption, and each thermal
// slot's demand is consumption × fuel_yield1. A slot with a nominal
// system id but no resolved entry keeps yield 1; an explicitly absent
// slot gets yield 0 and its consumption forced to zero.
func DeriveDemand(b *model.BuildingContext) (*model.DemandProfile, error) {
	if b.Building != nil && b.Building.Demand != nil {
		return b.Building.Demand, nil
	}
	if b.Profile == nil {
		return nil, &model.ConfigurationError{
			BuildingID: b.ID,
			Msg:        "demand profile could not be calculated: generation system profile is missing",
		}
	}
	if b.Consumption == nil {
		return nil, &model.ConfigurationError{
			BuildingID: b.ID,
			Msg:        "demand profile could not be calculated: consumption profile is missing",
		}
	}

	n := len(b.Consumption.Electricity)
	demand := &model.DemandProfile{Electricity: b.Consumption.Electricity.Clone()}

	derive := func(slot model.Slot) model.Series {
		cons := b.Consumption.BySlot(slot)
		sys := b.Profile.System(slot)
		if sys == nil {
			if b.Profile.SystemID(slot) == nil {
				// Slot explicitly absent: no demand for this end use.
				return model.Zeros(n)
			}
			return cons.Clone()
		}
		return cons.Scaled(sys.FuelYield1)
	}

	demand.Heating = derive(model.SlotHeating)
	demand.Cooling = derive(model.SlotCooling)
	demand.DHW = derive(model.SlotDHW)
	return demand, nil
}
