package kpi

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

func fixtureCatalogue() *catalogue.Catalogue {
	factors := []model.NationalFactors{{
		CountryID: 1, PEFRen: 0.2, PEFNonRen: 1.9,
		CostHousehold: 0.25, CostNonHousehold: 0.18, CO2PerKWh: 250,
	}}
	gasFactors := []model.NationalFactors{{
		CountryID: 1, PEFRen: 0.0, PEFNonRen: 1.1,
		CostHousehold: 0.09, CostNonHousehold: 0.06, CO2PerKWh: 202,
	}}
	return catalogue.New(
		[]*model.GenerationSystem{
			{ID: 79, Name: "electricity grid", FuelYield1: 1, CarrierID: 12, Final: true},
			{ID: 83, Name: "solar fleet", FuelYield1: 1, CarrierID: 19},
			{ID: 10, Name: "gas boiler", FuelYield1: 0.92, CarrierID: 4, Final: true},
			{ID: 63, Name: "air-water heat pump", FuelYield1: 3.2, CarrierID: 12},
			{ID: 35, Name: "dhw heat pump", FuelYield1: 2.8, CarrierID: 12},
		},
		[]*model.EnergyCarrier{
			{ID: 12, Name: "electricity_grid", Final: true, National: factors},
			{ID: 4, Name: "natural_gas", Final: true, National: gasFactors},
			{ID: 19, Name: "solar", Final: false},
		},
	)
}

func pvBuilding(steps int, consumption, capacity, availability float64) *model.BuildingContext {
	return &model.BuildingContext{
		ID: 1,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Constant(steps, consumption),
			Heating:     model.Zeros(steps),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{
			ElectricitySystemID: intPtr(79),
		},
		Assets: []*model.BuildingEnergyAsset{{
			GenerationSystemID: 83,
			PMaxMaxScalar:      capacity,
			Name:               "pv_building_1",
			Availability:       &model.AvailabilityTS{Input1: model.Constant(steps, availability)},
		}},
	}
}

func TestComputeBuildingEnergy_PVScenario(t *testing.T) {
	// Constant 10 kWh consumption, PV of capacity 5 at availability 0.5:
	// production 2.5, self-consumption 2.5, grid 7.5, sufficiency 25%.
	const steps = 8760
	b := pvBuilding(steps, 10, 5, 0.5)

	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		s    model.Series
		want float64
	}{
		{"total PV", be.TotalPV, 2.5},
		{"self consumption", be.SelfConsumption, 2.5},
		{"grid consumption", be.GridConsumption, 7.5},
		{"self sufficiency", be.SelfSufficiency, 25},
		{"rate of self consumption", be.RateOfSelfConsumption, 100},
	} {
		require.Len(t, tc.s, steps, tc.name)
		assert.InDelta(t, tc.want, tc.s[0], 1e-9, tc.name)
		assert.InDelta(t, tc.want, tc.s[steps-1], 1e-9, tc.name)
	}
}

func TestComputeBuildingEnergy_SelfConsumptionProperties(t *testing.T) {
	// Property check over randomized non-negative series.
	const steps = 200
	rng := rand.New(rand.NewSource(1))

	cons := make(model.Series, steps)
	avail := make(model.Series, steps)
	for i := 0; i < steps; i++ {
		cons[i] = rng.Float64() * 20
		avail[i] = rng.Float64()
	}

	b := pvBuilding(steps, 0, 4, 0)
	b.Consumption.Electricity = cons
	b.Assets[0].Availability.Input1 = avail

	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)

	for i := 0; i < steps; i++ {
		pv := be.TotalPV[i]
		use := be.TotalElectricityUse[i]
		sc := be.SelfConsumption[i]

		assert.InDelta(t, math.Min(use, pv), sc, 1e-12)
		assert.InDelta(t, use-sc, be.GridConsumption[i], 1e-12)
		assert.GreaterOrEqual(t, be.GridConsumption[i], -1e-12)
		if pv == 0 {
			assert.Zero(t, be.RateOfSelfConsumption[i])
		} else {
			assert.InDelta(t, 100*sc/pv, be.RateOfSelfConsumption[i], 1e-9)
		}
		if use == 0 {
			assert.Zero(t, be.SelfSufficiency[i])
		} else {
			assert.InDelta(t, 100*sc/use, be.SelfSufficiency[i], 1e-9)
		}
	}
}

func TestComputeBuildingEnergy_NoGenerationAsset(t *testing.T) {
	const steps = 24
	b := &model.BuildingContext{
		ID: 2,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Constant(steps, 3),
			Heating:     model.Zeros(steps),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{ElectricitySystemID: intPtr(79)},
	}
	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)

	assert.Equal(t, model.Constant(steps, 3), be.GridConsumption)
	assert.Equal(t, model.Zeros(steps), be.TotalPV)
	assert.Equal(t, model.Zeros(steps), be.SelfConsumption)
	assert.Equal(t, model.Zeros(steps), be.SelfSufficiency)

	// Grid carrier always receives the residual draw.
	acc, err := be.Carriers.Get(catalogue.GridCarrierID)
	require.NoError(t, err)
	assert.Equal(t, model.Constant(steps, 3), acc.Hourly)
}

func TestComputeBuildingEnergy_HeatPumpSlotAddsToElectricity(t *testing.T) {
	const steps = 4
	b := &model.BuildingContext{
		ID: 3,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Constant(steps, 1),
			Heating:     model.Constant(steps, 2),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{
			ElectricitySystemID: intPtr(79),
			HeatingSystemID:     intPtr(63), // heating heat pump
		},
	}
	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)
	assert.Equal(t, model.Constant(steps, 3), be.TotalElectricityUse)
}

func TestComputeBuildingEnergy_HeatPumpAssetSuppressesSlotConsumption(t *testing.T) {
	const steps = 4
	b := &model.BuildingContext{
		ID: 4,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Constant(steps, 1),
			Heating:     model.Constant(steps, 2),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{
			HeatingSystemID: intPtr(63),
		},
		Assets: []*model.BuildingEnergyAsset{{
			GenerationSystemID: 63,
			Name:               "hp_heating_building_4",
			Availability:       &model.AvailabilityTS{Input1: model.Constant(steps, 0.5)},
		}},
	}
	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)
	// Asset input (0.5) counted, slot consumption (2) not double-counted.
	assert.Equal(t, model.Constant(steps, 1.5), be.TotalElectricityUse)
}

func TestComputeBuildingEnergy_FuelSlotFeedsCarrier(t *testing.T) {
	const steps = 4
	b := &model.BuildingContext{
		ID: 5,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Zeros(steps),
			Heating:     model.Constant(steps, 6),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{
			HeatingSystemID: intPtr(10),
			HeatingSystem:   &model.GenerationSystem{ID: 10, FuelYield1: 0.92, CarrierID: 4},
		},
	}
	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)

	gas, err := be.Carriers.Get(4)
	require.NoError(t, err)
	assert.Equal(t, model.Constant(steps, 6), gas.Hourly)
	assert.Equal(t, model.Zeros(steps), be.TotalElectricityUse)

	// Gas is final with factors, so it becomes a KPI source.
	src, ok := be.Sources[4]
	require.True(t, ok)
	assert.InDelta(t, 6*1.1, src.PrimaryNonRenewable()[0], 1e-9)
}

func TestComputeBuildingEnergy_NullConsumptionSubstituted(t *testing.T) {
	const steps = 3
	b := &model.BuildingContext{
		ID: 6,
		Consumption: &model.ConsumptionProfile{
			Electricity: model.Series{1, math.NaN(), 3},
			Heating:     model.Zeros(steps),
			Cooling:     model.Zeros(steps),
			DHW:         model.Zeros(steps),
		},
		Profile: &model.GenerationSystemProfile{ElectricitySystemID: intPtr(79)},
	}
	be, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, steps)
	require.NoError(t, err)
	assert.Equal(t, model.Series{1, 0, 3}, be.TotalElectricityUse)
	assert.Equal(t, 1, be.Carriers.Substitutions)
}

func TestComputeBuildingEnergy_LengthMismatchFatal(t *testing.T) {
	b := pvBuilding(10, 1, 1, 0.5)
	b.Consumption.Electricity = model.Zeros(9)
	_, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, 10)
	var iv *model.InvariantViolation
	require.ErrorAs(t, err, &iv)
}

func TestComputeBuildingEnergy_MissingConsumptionFatal(t *testing.T) {
	b := &model.BuildingContext{ID: 9}
	_, err := ComputeBuildingEnergy(fixtureCatalogue(), b, 1, 10)
	var ce *model.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 9, ce.BuildingID)
}
