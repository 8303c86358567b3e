package scenario

import (
	"fmt"

	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// defaultElectricCapacityKW sizes a generic (non solar-fleet) electric
// asset when nothing better is known.
const defaultElectricCapacityKW = 3

// PV fleet sizing from the conditioned area: assumed panel density and
// specific yield.
const (
	pvPanelDensity  = 0.6
	pvSpecificYield = 6
)

// newElectricAsset builds the asset for an electricity-slot replacement.
// The solar fleet is sized from the rooftop area and carries the raw PV
// production profile; any other technology gets a fixed default
// capacity with the profile scaled by its yield.
func (e *Engine) newElectricAsset(sys *model.GenerationSystem, b *model.BuildingContext) *model.BuildingEnergyAsset {
	bid := buildingID(b)
	pv := e.Resource.PVProfile()

	if sys.ID == catalogue.SolarFleetSystemID {
		var area float64
		if b.Building != nil {
			area = b.Building.AreaConditioned
		}
		return &model.BuildingEnergyAsset{
			GenerationSystemID: sys.ID,
			PMaxMaxScalar:      area * pvPanelDensity / pvSpecificYield,
			BuildingContextID:  bid,
			Name:               fmt.Sprintf("pv_building_%d", bid),
			Availability:       &model.AvailabilityTS{Input1: pv.Clone()},
			System:             sys,
		}
	}
	return &model.BuildingEnergyAsset{
		GenerationSystemID: sys.ID,
		PMaxMaxScalar:      defaultElectricCapacityKW,
		BuildingContextID:  bid,
		Name:               fmt.Sprintf("%s_building_%d", sys.Name, bid),
		Availability:       &model.AvailabilityTS{Input1: pv.Scaled(sys.FuelYield1)},
		System:             sys,
	}
}

// newThermalAsset builds a heating/cooling/DHW asset with its hourly
// input and output series derived from the slot demand and the system's
// fuel yields.
func (e *Engine) newThermalAsset(sys *model.GenerationSystem, capacity float64, demand model.Series, b *model.BuildingContext, slot model.Slot) *model.BuildingEnergyAsset {
	bid := buildingID(b)
	return &model.BuildingEnergyAsset{
		GenerationSystemID: sys.ID,
		PMaxMaxScalar:      capacity,
		BuildingContextID:  bid,
		Name:               fmt.Sprintf("%s_%s_building_%d", sys.Name, slot, bid),
		Availability:       conversionProfile(demand, sys),
		System:             sys,
	}
}

// conversionProfile derives asset input/output series. Output equals
// the served demand; input is demand divided by the fuel yield. Heat
// pumps with a second yield split the input across two carriers.
func conversionProfile(demand model.Series, sys *model.GenerationSystem) *model.AvailabilityTS {
	ts := &model.AvailabilityTS{Output1: demand.Clone()}
	if sys.FuelYield1 > 0 {
		ts.Input1 = demand.Scaled(1 / sys.FuelYield1)
	} else {
		ts.Input1 = model.Zeros(len(demand))
	}
	if catalogue.IsHeatPump(sys.ID) && sys.FuelYield2 != nil && *sys.FuelYield2 > 0 {
		ts.Input2 = demand.Scaled(1 / *sys.FuelYield2)
	}
	return ts
}

// stampSlot records which slot a newly created asset serves and with
// which system. The record feeds duplicate detection only.
func stampSlot(a *model.BuildingEnergyAsset, slot model.Slot, systemID int) {
	id := systemID
	switch slot {
	case model.SlotElectricity:
		a.ElectricitySystemID = &id
	case model.SlotHeating:
		a.HeatingSystemID = &id
	case model.SlotCooling:
		a.CoolingSystemID = &id
	case model.SlotDHW:
		a.DHWSystemID = &id
	}
}

// removeDuplicateAssets drops newly added assets whose recorded slot
// ids agree with the building's pre-action assignments on every slot
// both sides define: an asset carrying a technology the prior context
// already assigned to the same slot duplicates it. Assets without
// recorded slot ids (pre-existing input data) are never touched.
func removeDuplicateAssets(prior model.SlotIDs, assets []*model.BuildingEnergyAsset) []*model.BuildingEnergyAsset {
	kept := assets[:0]
	for _, a := range assets {
		if !matchesPrior(prior, a) {
			kept = append(kept, a)
		}
	}
	return kept
}

func matchesPrior(prior model.SlotIDs, a *model.BuildingEnergyAsset) bool {
	compared := false
	for _, pair := range []struct{ prior, asset *int }{
		{prior.Electricity, a.ElectricitySystemID},
		{prior.Heating, a.HeatingSystemID},
		{prior.Cooling, a.CoolingSystemID},
		{prior.DHW, a.DHWSystemID},
	} {
		if pair.prior == nil || pair.asset == nil {
			continue
		}
		if *pair.prior != *pair.asset {
			return false
		}
		compared = true
	}
	return compared
}
