package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_community/internal/model"
)

func intPtr(v int) *int { return &v }

func TestDeriveDemand_ExistingProfileReturnedUnchanged(t *testing.T) {
	existing := &model.DemandProfile{Electricity: model.Series{1, 2}}
	b := &model.BuildingContext{
		ID:       7,
		Building: &model.Building{Demand: existing},
	}
	d, err := DeriveDemand(b)
	require.NoError(t, err)
	assert.Same(t, existing, d)
}

func TestDeriveDemand_FromConsumptionAndYields(t *testing.T) {
	heating := &model.GenerationSystem{ID: 10, FuelYield1: 0.9}
	b := &model.BuildingContext{
		ID:       1,
		Building: &model.Building{},
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Series{10, 10},
			Heating:     model.Series{100, 200},
			Cooling:     model.Series{4, 4},
			DHW:         model.Series{50, 50},
		},
		Profile: &model.GenerationSystemProfile{
			HeatingSystemID: intPtr(10),
			HeatingSystem:   heating,
			// cooling nominally assigned but unresolved: yield 1
			CoolingSystemID: intPtr(5),
			// dhw explicitly absent: forced zero
		},
	}
	d, err := DeriveDemand(b)
	require.NoError(t, err)
	assert.Equal(t, model.Series{10, 10}, d.Electricity)
	assert.InDeltaSlice(t, []float64{90, 180}, d.Heating, 1e-9)
	assert.Equal(t, model.Series{4, 4}, d.Cooling)
	assert.Equal(t, model.Series{0, 0}, d.DHW)
}

func TestDeriveDemand_MissingEverythingIsConfigurationError(t *testing.T) {
	b := &model.BuildingContext{ID: 42, Building: &model.Building{}}
	_, err := DeriveDemand(b)
	var ce *model.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 42, ce.BuildingID)
}

func TestDeriveDemand_RoundTripWithConsumptionRecompute(t *testing.T) {
	// derive_demand then the inverse consumption recompute with the same
	// fuel yields reproduces the original consumption.
	yield := 3.1
	heating := &model.GenerationSystem{ID: 63, FuelYield1: yield}
	cons := model.Series{12.5, 7.25, 0, 3}
	b := &model.BuildingContext{
		ID:       1,
		Building: &model.Building{},
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Series{1, 1, 1, 1},
			Heating:     cons.Clone(),
			Cooling:     model.Zeros(4),
			DHW:         model.Zeros(4),
		},
		Profile: &model.GenerationSystemProfile{
			HeatingSystemID: intPtr(63),
			HeatingSystem:   heating,
		},
	}
	d, err := DeriveDemand(b)
	require.NoError(t, err)

	recomputed := d.Heating.Scaled(1 / yield)
	assert.InDeltaSlice(t, cons, recomputed, 1e-12)
}
