package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_community/internal/model"
)

func TestWindPower_CutInAndCutOut(t *testing.T) {
	out := WindPower(model.Series{0, 1.0, 1.85, 16, 25})
	// Below cut-in and above cut-out the turbines produce nothing.
	assert.Zero(t, out[0])
	assert.Zero(t, out[1])
	assert.Zero(t, out[2])
	assert.Zero(t, out[3])
	assert.Zero(t, out[4])
}

func TestWindPower_NominalRange(t *testing.T) {
	out := WindPower(model.Series{10})
	// E200: 15500/20000, 030pro: 2100/3000, averaged.
	want := (15500.0/20000 + 2100.0/3000) / 2
	assert.InDelta(t, want, out[0], 1e-9)

	// Production per kWp never exceeds 1.
	sweep := make(model.Series, 0, 300)
	for ws := 0.0; ws <= 30; ws += 0.1 {
		sweep = append(sweep, ws)
	}
	for i, p := range WindPower(sweep) {
		assert.GreaterOrEqual(t, p, 0.0, "ws=%f", sweep[i])
		assert.LessOrEqual(t, p, 1.0, "ws=%f", sweep[i])
	}
}

func TestWindPower_InterpolatesBetweenTablePoints(t *testing.T) {
	at4 := WindPower(model.Series{4})[0]
	at5 := WindPower(model.Series{5})[0]
	mid := WindPower(model.Series{4.5})[0]
	assert.InDelta(t, (at4+at5)/2, mid, 1e-9)
}

func TestResource_PVProfileFallback(t *testing.T) {
	var r *Resource
	p := r.PVProfile()
	require.Len(t, p, HoursPerYear)

	// Bell curve peaks at solar noon, dark at night.
	assert.InDelta(t, 1.0, p[12], 1e-9)
	assert.Zero(t, p[0])
	assert.Equal(t, p[12], p[36], "shape repeats daily")
}

func TestResource_PVProfilePrefersMeasuredData(t *testing.T) {
	measured := model.Constant(4, 0.42)
	r := &Resource{PVPerKWp: measured}
	assert.Equal(t, measured, r.PVProfile())
}

func TestResource_WindPotentialEmpty(t *testing.T) {
	r := &Resource{}
	assert.Equal(t, model.Zeros(HoursPerYear), r.WindPotential())
}
