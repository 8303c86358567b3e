package kpi

import "energy_community/internal/model"

// CitizenFactors is the published conversion table behind the
// citizen-facing equivalence metrics. It is configuration, not core
// logic; callers may substitute their own table.
type CitizenFactors struct {
	TVHourKWh         float64 // energy of one hour of TV
	StreamingHourKWh  float64 // energy of one hour of video streaming
	PizzaKWh          float64 // energy to bake one pizza
	BatteryChargeKWh  float64 // energy of one phone battery charge
	EVChargeKWh       float64 // energy of one full EV charge
	WineBottleKWh     float64 // energy to produce one bottle of wine
	TreeKgCO2         float64 // CO2 absorbed by one tree per year
	StreamingHourKg   float64 // CO2 of one hour of video streaming
	CarKmKgCO2        float64 // CO2 per km of an average combustion car
}

// DefaultCitizenFactors returns the published defaults.
func DefaultCitizenFactors() CitizenFactors {
	return CitizenFactors{
		TVHourKWh:        0.12,
		StreamingHourKWh: 0.077,
		PizzaKWh:         1.125,
		BatteryChargeKWh: 0.0122,
		EVChargeKWh:      38,
		WineBottleKWh:    2.04,
		TreeKgCO2:        21,
		StreamingHourKg:  0.055,
		CarKmKgCO2:       0.143,
	}
}

// Energy equivalences, applied element-wise to a primary energy series
// in kWh.

func (f CitizenFactors) TVHours(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.TVHourKWh)
}

func (f CitizenFactors) StreamingHours(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.StreamingHourKWh)
}

func (f CitizenFactors) Pizzas(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.PizzaKWh)
}

func (f CitizenFactors) BatteryCharges(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.BatteryChargeKWh)
}

func (f CitizenFactors) EVCharges(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.EVChargeKWh)
}

func (f CitizenFactors) WineBottles(primaryKWh model.Series) model.Series {
	return primaryKWh.Scaled(1 / f.WineBottleKWh)
}

// CO2 equivalences, applied element-wise to an emission series in kg.

func (f CitizenFactors) Trees(co2Kg model.Series) model.Series {
	return co2Kg.Scaled(1 / f.TreeKgCO2)
}

func (f CitizenFactors) StreamingEmissionHours(co2Kg model.Series) model.Series {
	return co2Kg.Scaled(1 / f.StreamingHourKg)
}

func (f CitizenFactors) CarKilometers(co2Kg model.Series) model.Series {
	return co2Kg.Scaled(1 / f.CarKmKgCO2)
}
