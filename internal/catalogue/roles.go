package catalogue

import "energy_community/internal/model"

// Role classifies a generation system by function. Any id without a role
// is a fuel-burning device whose input carrier comes from the catalogue.
type Role int

const (
	RoleFuel Role = iota
	RoleCoolingHeatPump
	RoleHeatingHeatPump
	RoleDHWHeatPump
	RoleSolarThermal
	RoleDirectElectric
	RoleCHP
)

// Well-known catalogue ids.
const (
	// GridSystemID is the electricity grid connection.
	GridSystemID = 79
	// SolarFleetSystemID is the rooftop PV fleet technology.
	SolarFleetSystemID = 83
	// GridCarrierID is the electricity-grid energy carrier; it always
	// receives the computed grid consumption.
	GridCarrierID = 12
)

// roleByID is the single versioned role table shared by the scenario and
// KPI engines. District-heating ids (145, 147, 153, 155) are deliberately
// absent: their electricity is consumed elsewhere.
var roleByID = map[int]Role{}

func init() {
	assign := func(role Role, ids ...int) {
		for _, id := range ids {
			roleByID[id] = role
		}
	}
	assign(RoleCoolingHeatPump, 1, 2, 3, 4, 5, 6, 7, 8)
	assign(RoleDHWHeatPump, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 41)
	assign(RoleSolarThermal, 37, 38, 39, 40, 69, 70, 71, 72)
	assign(RoleHeatingHeatPump, 61, 62, 63, 64, 65, 66, 67, 68, 73)
	assign(RoleDirectElectric, 80, 81, 82, 83, 84, 85, 86, 87)
	assign(RoleCHP, 88, 89, 90, 91)
}

// RoleOf returns the functional role of a system id.
func RoleOf(id int) Role {
	return roleByID[id]
}

// IsHeatPump reports whether the system's input energy is electricity.
func IsHeatPump(id int) bool {
	switch roleByID[id] {
	case RoleCoolingHeatPump, RoleHeatingHeatPump, RoleDHWHeatPump:
		return true
	}
	return false
}

// HeatPumpRoleForSlot returns the heat-pump role matching a thermal slot.
func HeatPumpRoleForSlot(s model.Slot) (Role, bool) {
	switch s {
	case model.SlotCooling:
		return RoleCoolingHeatPump, true
	case model.SlotHeating:
		return RoleHeatingHeatPump, true
	case model.SlotDHW:
		return RoleDHWHeatPump, true
	}
	return RoleFuel, false
}

// SlotOfRole maps a heat-pump role back to its building slot.
func SlotOfRole(r Role) model.Slot {
	switch r {
	case RoleCoolingHeatPump:
		return model.SlotCooling
	case RoleHeatingHeatPump:
		return model.SlotHeating
	case RoleDHWHeatPump:
		return model.SlotDHW
	}
	return ""
}
