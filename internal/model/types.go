package model

// Slot identifies one of the four building energy uses. Exactly one
// generation system is assigned per slot at a time.
type Slot string

const (
	SlotElectricity Slot = "electricity"
	SlotHeating     Slot = "heating"
	SlotCooling     Slot = "cooling"
	SlotDHW         Slot = "dhw"
)

// ThermalSlots are the slots sized from demand peaks during scenario
// transformation. Order matches the original processing order.
var ThermalSlots = []Slot{SlotDHW, SlotCooling, SlotHeating}

// AllSlots lists every slot in processing order.
var AllSlots = []Slot{SlotElectricity, SlotHeating, SlotCooling, SlotDHW}

// Label returns the action-table system-type label for the slot,
// e.g. "electricity_system_id".
func (s Slot) Label() string {
	return string(s) + "_system_id"
}

// NationalFactors converts a carrier's accumulated final energy into
// primary energy, cost and CO2 for one country.
type NationalFactors struct {
	CountryID        int     `json:"country_id"`
	PEFRen           float64 `json:"pef_ren"`
	PEFNonRen        float64 `json:"pef_nren"`
	CostHousehold    float64 `json:"cost_household"`     // currency per kWh
	CostNonHousehold float64 `json:"cost_non_household"` // currency per kWh
	CO2PerKWh        float64 `json:"co2_factor"`         // grams per kWh
}

// EnergyCarrier is one energy carrier from the catalogue. Final carriers
// participate in primary-energy, cost and CO2 conversion.
type EnergyCarrier struct {
	ID       int               `json:"id"`
	Name     string            `json:"name"`
	Final    bool              `json:"final"`
	National []NationalFactors `json:"national_energy_carrier_production,omitempty"`
}

// FactorsFor returns the national factors for a country, or the first
// entry when the country is not listed (mirrors the upstream behaviour
// of taking the first record).
func (c *EnergyCarrier) FactorsFor(countryID int) (NationalFactors, bool) {
	if c == nil || len(c.National) == 0 {
		return NationalFactors{}, false
	}
	for _, f := range c.National {
		if f.CountryID == countryID {
			return f, true
		}
	}
	return c.National[0], true
}

// GenerationSystem is an immutable catalogue record for one technology.
type GenerationSystem struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	FuelYield1 float64  `json:"fuel_yield1"`
	FuelYield2 *float64 `json:"fuel_yield2"`
	// CarrierID identifies the energy carrier consumed on the first input.
	CarrierID int            `json:"energy_carrier_input_1_id"`
	Carrier   *EnergyCarrier `json:"energy_carrier_input_1,omitempty"`
	Final     bool           `json:"final"`
}

// GenerationSystemProfile maps each slot to its assigned system, or nil
// when the building has no system for that use.
type GenerationSystemProfile struct {
	ElectricitySystemID *int              `json:"electricity_system_id"`
	HeatingSystemID     *int              `json:"heating_system_id"`
	CoolingSystemID     *int              `json:"cooling_system_id"`
	DHWSystemID         *int              `json:"dhw_system_id"`
	ElectricitySystem   *GenerationSystem `json:"electricity_system"`
	HeatingSystem       *GenerationSystem `json:"heating_system"`
	CoolingSystem       *GenerationSystem `json:"cooling_system"`
	DHWSystem           *GenerationSystem `json:"dhw_system"`
}

// SystemID returns the assigned system id for a slot, nil when unset.
func (p *GenerationSystemProfile) SystemID(s Slot) *int {
	if p == nil {
		return nil
	}
	switch s {
	case SlotElectricity:
		return p.ElectricitySystemID
	case SlotHeating:
		return p.HeatingSystemID
	case SlotCooling:
		return p.CoolingSystemID
	case SlotDHW:
		return p.DHWSystemID
	}
	return nil
}

// System returns the resolved catalogue entry for a slot, nil when unset.
func (p *GenerationSystemProfile) System(s Slot) *GenerationSystem {
	if p == nil {
		return nil
	}
	switch s {
	case SlotElectricity:
		return p.ElectricitySystem
	case SlotHeating:
		return p.HeatingSystem
	case SlotCooling:
		return p.CoolingSystem
	case SlotDHW:
		return p.DHWSystem
	}
	return nil
}

// SetSystem assigns a system to a slot, updating both the id and the
// resolved entry.
func (p *GenerationSystemProfile) SetSystem(s Slot, sys *GenerationSystem) {
	var id *int
	if sys != nil {
		v := sys.ID
		id = &v
	}
	switch s {
	case SlotElectricity:
		p.ElectricitySystemID, p.ElectricitySystem = id, sys
	case SlotHeating:
		p.HeatingSystemID, p.HeatingSystem = id, sys
	case SlotCooling:
		p.CoolingSystemID, p.CoolingSystem = id, sys
	case SlotDHW:
		p.DHWSystemID, p.DHWSystem = id, sys
	}
}

// SlotIDs returns a snapshot of the four slot assignments.
func (p *GenerationSystemProfile) SlotIDs() SlotIDs {
	if p == nil {
		return SlotIDs{}
	}
	return SlotIDs{
		Electricity: copyIntPtr(p.ElectricitySystemID),
		Heating:     copyIntPtr(p.HeatingSystemID),
		Cooling:     copyIntPtr(p.CoolingSystemID),
		DHW:         copyIntPtr(p.DHWSystemID),
	}
}

// SlotIDs is an immutable snapshot of per-slot system ids. A nil field
// means "no constraint": the slot was unset or explicitly null.
type SlotIDs struct {
	Electricity *int
	Heating     *int
	Cooling     *int
	DHW         *int
}

func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ConsumptionProfile holds a building's hourly metered or estimated
// energy use per end use.
type ConsumptionProfile struct {
	TempID      int    `json:"building_consumption_id_temp,omitempty"`
	Electricity Series `json:"elec_consumption"`
	Heating     Series `json:"heat_consumption"`
	Cooling     Series `json:"cool_consumption"`
	DHW         Series `json:"dhw_consumption"`
}

// BySlot returns the consumption series for a slot.
func (c *ConsumptionProfile) BySlot(s Slot) Series {
	switch s {
	case SlotElectricity:
		return c.Electricity
	case SlotHeating:
		return c.Heating
	case SlotCooling:
		return c.Cooling
	case SlotDHW:
		return c.DHW
	}
	return nil
}

// DemandProfile holds a building's hourly end-use demand. All four
// series have identical length.
type DemandProfile struct {
	Electricity Series `json:"electricity_demand"`
	Heating     Series `json:"heating_demand"`
	Cooling     Series `json:"cooling_demand"`
	DHW         Series `json:"dhw_demand"`
}

// BySlot returns the demand series for a slot.
func (d *DemandProfile) BySlot(s Slot) Series {
	switch s {
	case SlotElectricity:
		return d.Electricity
	case SlotHeating:
		return d.Heating
	case SlotCooling:
		return d.Cooling
	case SlotDHW:
		return d.DHW
	}
	return nil
}

// AvailabilityTS carries the hourly input/output series of an asset.
type AvailabilityTS struct {
	TempID  int    `json:"id_temp,omitempty"`
	Input1  Series `json:"value_input1,omitempty"`
	Input2  Series `json:"value_input2,omitempty"`
	Output1 Series `json:"value_output1,omitempty"`
}

// BuildingEnergyAsset is a technology owned by one building. The slot id
// fields record the building's slot assignments at creation time and are
// only used for duplicate detection; nil means no constraint.
type BuildingEnergyAsset struct {
	TempID             int             `json:"id_temp,omitempty"`
	GenerationSystemID int             `json:"generation_system_id"`
	PMaxMinScalar      float64         `json:"pmaxmin_scalar"`
	PMaxMaxScalar      float64         `json:"pmaxmax_scalar"`
	BuildingContextID  int             `json:"building_asset_context_id"`
	Name               string          `json:"name"`
	Availability       *AvailabilityTS `json:"availability_ts"`
	System             *GenerationSystem `json:"generation_system,omitempty"`

	ElectricitySystemID *int `json:"electricity_system_id,omitempty"`
	HeatingSystemID     *int `json:"heating_system_id,omitempty"`
	CoolingSystemID     *int `json:"cooling_system_id,omitempty"`
	DHWSystemID         *int `json:"dhw_system_id,omitempty"`
}

// Node is a topology point community assets attach to.
type Node struct {
	TempID      int                     `json:"id_temp,omitempty"`
	ContextID   *int                    `json:"context_id"`
	Geom        string                  `json:"geom"`
	Name        string                  `json:"name"`
	AssetInputs []*CommunityEnergyAsset `json:"community_energy_asset_input,omitempty"`
}

// CommunityEnergyAsset is a shared technology (grid, storage, wind, CHP).
type CommunityEnergyAsset struct {
	TempID             int               `json:"id_temp,omitempty"`
	GenerationSystemID int               `json:"generation_system_id"`
	PMaxMinScalar      float64           `json:"pmaxmin_scalar"`
	PMaxMaxScalar      float64           `json:"pmaxmax_scalar"`
	Name               string            `json:"name"`
	InputNode          *Node             `json:"input_node"`
	OutputNode         *Node             `json:"output_node,omitempty"`
	Availability       *AvailabilityTS   `json:"availability_ts"`
	System             *GenerationSystem `json:"generation_system,omitempty"`
}

// Building holds identity and geometry for one building.
type Building struct {
	ID              int            `json:"id"`
	Geom            string         `json:"geom"`
	AreaConditioned float64        `json:"area_conditioned"`
	Demand          *DemandProfile `json:"demandprofile,omitempty"`
}

// BuildingContext aggregates a building with its profiles and assets.
type BuildingContext struct {
	ID                int                      `json:"id,omitempty"`
	TempID            int                      `json:"id_temp,omitempty"`
	ContextID         int                      `json:"context_id,omitempty"`
	Name              string                   `json:"name"`
	Building          *Building                `json:"building"`
	Consumption       *ConsumptionProfile      `json:"building_consumption"`
	Profile           *GenerationSystemProfile `json:"generation_system_profile"`
	ProfileID         *int                     `json:"generation_system_profile_id"`
	Assets            []*BuildingEnergyAsset   `json:"building_energy_asset"`
	ConsumptionTempID int                      `json:"building_consumption_id_temp,omitempty"`
}

// CommunityContext is the one mutable document of a scenario run.
type CommunityContext struct {
	ID                 int                     `json:"id,omitempty"`
	TempID             int                     `json:"id_temp,omitempty"`
	ContextParent      int                     `json:"context_parent,omitempty"`
	Name               string                  `json:"name"`
	Description        string                  `json:"description"`
	Goal               int                     `json:"goal,omitempty"`
	StartDate          string                  `json:"start_date,omitempty"`
	TimestepCount      int                     `json:"timestep_count,omitempty"`
	TimestepDurationMS int                     `json:"timestep_duration,omitempty"`
	CreationDate       string                  `json:"creation_date,omitempty"`
	Buildings          []*BuildingContext      `json:"building_asset_context"`
	CommunityAssets    []*CommunityEnergyAsset `json:"community_energy_asset"`
	Nodes              []*Node                 `json:"node,omitempty"`
}

// Recommendation is one recommended action from the catalogue of
// interventions. ID may be absent in malformed input.
type Recommendation struct {
	ID         *int   `json:"id"`
	ActionName string `json:"action_name"`
}

// KPIEntry is one indicator produced per building. Exactly one of
// Scalar and Series is set.
type KPIEntry struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Scalar *float64 `json:"scalar,omitempty"`
	Series Series   `json:"series,omitempty"`
	Unit   string   `json:"unit"`
}

// ScalarKPI builds a scalar-valued entry.
func ScalarKPI(id int, name string, value float64, unit string) KPIEntry {
	return KPIEntry{ID: id, Name: name, Scalar: &value, Unit: unit}
}

// SeriesKPI builds a series-valued entry.
func SeriesKPI(id int, name string, value Series, unit string) KPIEntry {
	return KPIEntry{ID: id, Name: name, Series: value, Unit: unit}
}

// KPIValue is an aggregated community indicator.
type KPIValue struct {
	Scalar *float64 `json:"scalar,omitempty"`
	Series Series   `json:"series,omitempty"`
	Unit   string   `json:"unit"`
}
