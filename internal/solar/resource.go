// Package solar carries the weather-resource data the scenario engine
// consumes: hourly PV production per kWp, wind speeds with their
// turbine conversion curve, and outdoor temperature. The data arrives
// from an external resource service; this package never fetches it.
package solar

import (
	"math"

	"energy_community/internal/model"
)

// HoursPerYear is the canonical profile length.
const HoursPerYear = 8760

// Resource is the per-community weather bundle, keyed to the community
// centroid the profiles were computed for.
type Resource struct {
	// Centroid is the community centroid in WKT, e.g. "POINT (lon lat)".
	Centroid string
	// PVPerKWp is hourly PV production per installed kWp.
	PVPerKWp model.Series
	// WindSpeed is the hourly 10 m wind speed in m/s.
	WindSpeed model.Series
	// T2m is the hourly 2 m air temperature in °C.
	T2m model.Series
}

// PVProfile returns the PV production shape, falling back to a
// synthetic daily bell curve when no measured profile is present.
func (r *Resource) PVProfile() model.Series {
	if r != nil && len(r.PVPerKWp) > 0 {
		return r.PVPerKWp
	}
	return FallbackPVProfile(HoursPerYear)
}

// WindPotential converts the wind-speed series into hourly production
// per installed kWp using the averaged turbine curve.
func (r *Resource) WindPotential() model.Series {
	if r == nil || len(r.WindSpeed) == 0 {
		return model.Zeros(HoursPerYear)
	}
	return WindPower(r.WindSpeed)
}

// Turbine power tables. The reference machines are the Enair E200
// (18 m mast, 20 kW nominal, cut-in at 1.85 m/s) and the 030pro
// (3 kW nominal). Power is normalized per kW of nominal capacity.
var (
	windSpeedTable = []float64{0, 1.85, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 20.01}
	powerTableE200 = []float64{0, 0, 80, 500, 1350, 2800, 4700, 7000, 9600, 12300, 15500, 17800, 18500, 18000,
		17500, 17500, 17500, 17500, 17500, 17500, 17500, 0}

	windSpeedTable030 = []float64{0, 1.85, 2, 3, 4, 5, 7, 8, 9, 10, 11, 12, 15, 15.01}
	powerTable030     = []float64{0, 0, 0, 10, 100, 300, 1000, 1450, 1850, 2100, 2300, 2500, 2500, 0}
)

// WindPower maps wind speeds (m/s) to production per kWp. The curve is
// the mean of both reference turbines, forced to zero above 15 m/s
// (storm cut-out).
func WindPower(windSpeed model.Series) model.Series {
	curve := meanTurbineCurve()
	out := make(model.Series, len(windSpeed))
	for i, ws := range windSpeed {
		out[i] = interpolate(windSpeedTable, curve, ws)
	}
	return out
}

func meanTurbineCurve() []float64 {
	mean := make([]float64, len(windSpeedTable))
	for i, ws := range windSpeedTable {
		e200 := powerTableE200[i] / 20000
		pro := interpolate(windSpeedTable030, powerTable030, ws) / 3000
		if ws > 15 {
			continue
		}
		mean[i] = (e200 + pro) / 2
	}
	return mean
}

// interpolate is piecewise-linear with clamped endpoints: values below
// xs[0] map to ys[0] and values above xs[len-1] to the last y.
func interpolate(xs, ys []float64, x float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return ys[last]
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1]*(1-frac) + ys[i]*frac
		}
	}
	return ys[last]
}

// FallbackPVProfile builds a synthetic per-kWp production shape: a
// daily bell curve centered at solar noon, repeated over the horizon.
func FallbackPVProfile(steps int) model.Series {
	var day [24]float64
	for h := 0; h < 24; h++ {
		dist := float64(h) - 12.0
		day[h] = math.Exp(-dist * dist / 18.0)
		if day[h] < 0.01 {
			day[h] = 0
		}
	}
	out := make(model.Series, steps)
	for i := range out {
		out[i] = day[i%24]
	}
	return out
}
