package ingest

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSystems_BareArray(t *testing.T) {
	input := `[
		{"id": 79, "name": "electricity grid", "fuel_yield1": 1, "fuel_yield2": null, "energy_carrier_input_1_id": 12, "final": true},
		{"id": 63, "name": "aerothermal heat pump", "fuel_yield1": 3.2, "energy_carrier_input_1_id": 12}
	]`
	systems, err := LoadSystems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, systems, 2)

	assert.Equal(t, 79, systems[0].ID)
	assert.True(t, systems[0].Final)
	assert.Nil(t, systems[0].FuelYield2)
	assert.InDelta(t, 3.2, systems[1].FuelYield1, 1e-9)
	assert.Equal(t, 12, systems[1].CarrierID)
}

func TestLoadSystems_WrappedObject(t *testing.T) {
	input := `{"generation_system": [{"id": 10, "name": "gas boiler", "fuel_yield1": 0.92, "energy_carrier_input_1_id": 4}]}`
	systems, err := LoadSystems(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, systems, 1)
	assert.Equal(t, "gas boiler", systems[0].Name)
}

func TestLoadSystems_Malformed(t *testing.T) {
	_, err := LoadSystems(strings.NewReader(`{"something": 1}`))
	assert.Error(t, err)
}

func TestLoadCarriers_WithNationalFactors(t *testing.T) {
	input := `[{
		"id": 12, "name": "electricity_grid", "final": true,
		"national_energy_carrier_production": [
			{"country_id": 1, "pef_ren": 0.2, "pef_nren": 1.9, "cost_household": 0.25, "cost_non_household": 0.18, "co2_factor": 250}
		]
	}]`
	carriers, err := LoadCarriers(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, carriers, 1)
	require.Len(t, carriers[0].National, 1)
	assert.InDelta(t, 1.9, carriers[0].National[0].PEFNonRen, 1e-9)
}

func TestLoadCatalogue(t *testing.T) {
	systems := `[{"id": 79, "name": "grid", "fuel_yield1": 1, "energy_carrier_input_1_id": 12}]`
	carriers := `[{"id": 12, "name": "electricity_grid", "final": true}]`
	cat, err := LoadCatalogue(strings.NewReader(systems), strings.NewReader(carriers))
	require.NoError(t, err)

	sys, err := cat.System(79)
	require.NoError(t, err)
	assert.Equal(t, "grid", sys.Name)
}

func TestLoadContext_NullSeriesEntries(t *testing.T) {
	input := `{
		"id": 5,
		"name": "ispaster",
		"building_asset_context": [{
			"name": "b1",
			"building": {"id": 1, "area_conditioned": 600},
			"building_consumption": {"elec_consumption": [1, null, 3], "heat_consumption": [], "cool_consumption": [], "dhw_consumption": []},
			"generation_system_profile": {"electricity_system_id": 79, "heating_system_id": null, "cooling_system_id": null, "dhw_system_id": null}
		}]
	}`
	ctx, err := LoadContext(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, ctx.Buildings, 1)

	elec := ctx.Buildings[0].Consumption.Electricity
	require.Len(t, elec, 3)
	assert.True(t, math.IsNaN(elec[1]), "null decodes to NaN for later substitution")
	require.NotNil(t, ctx.Buildings[0].Profile.ElectricitySystemID)
	assert.Equal(t, 79, *ctx.Buildings[0].Profile.ElectricitySystemID)
	assert.Nil(t, ctx.Buildings[0].Profile.HeatingSystemID)
}

func TestLoadRecommendations_IndexKeyedObject(t *testing.T) {
	input := `{"0": {"id": 4, "action_name": "wind_fleet"}, "1": {"id": 3, "action_name": "solar_fleet"}}`
	recs, err := LoadRecommendations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 4, *recs[0].ID)
	assert.Equal(t, "solar_fleet", recs[1].ActionName)
}

func TestLoadRecommendations_BareArrayAndMissingID(t *testing.T) {
	input := `[{"id": 3, "action_name": "solar_fleet"}, {"action_name": "broken"}]`
	recs, err := LoadRecommendations(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Nil(t, recs[1].ID, "missing id survives decoding for the engine to log and skip")
}

func TestParseActionsCSV(t *testing.T) {
	input := `action_key,name_system_type,id
3,electricity_system_id,83
15,storage,95
19,district heating_system_id,
`
	table, err := ParseActionsCSV(strings.NewReader(input))
	require.NoError(t, err)

	id, ok := table.ReplacementFor(3, "electricity_system_id")
	require.True(t, ok)
	assert.Equal(t, 83, id)

	id, ok = table.ReplacementFor(15, "storage")
	require.True(t, ok)
	assert.Equal(t, 95, id)

	// Empty id cells never resolve.
	_, ok = table.ReplacementFor(19, "heating_system_id")
	assert.False(t, ok)
}

func TestParseActionsCSV_MissingColumn(t *testing.T) {
	input := `action_key,id
3,83
`
	_, err := ParseActionsCSV(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name_system_type")
}

func TestParseActionsJSON_IDVariants(t *testing.T) {
	input := `[
		{"action_key": 3, "name_system_type": "electricity_system_id", "id": 83},
		{"action_key": 7, "name_system_type": "dhw_system_id", "id": [37, 38]},
		{"action_key": 10, "name_system_type": "heating_system_id", "id": {"b": 64, "a": 63}},
		{"action_key": 19, "name_system_type": "heating_system_id", "id": null}
	]`
	table, err := ParseActionsJSON(strings.NewReader(input))
	require.NoError(t, err)

	id, ok := table.ReplacementFor(3, "electricity_system_id")
	require.True(t, ok)
	assert.Equal(t, 83, id)

	id, ok = table.ReplacementFor(7, "dhw_system_id")
	require.True(t, ok)
	assert.Equal(t, 37, id, "lists normalize to element 0")

	id, ok = table.ReplacementFor(10, "heating_system_id")
	require.True(t, ok)
	assert.Equal(t, 63, id, "mappings normalize to the first value in key order")

	_, ok = table.ReplacementFor(19, "heating_system_id")
	assert.False(t, ok)
}
