package kpi

import (
	"sort"

	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// Accumulator collects final energy for one carrier over a building's
// computation. Created lazily, discarded when the building is done.
type Accumulator struct {
	Carrier *model.EnergyCarrier
	Hourly  model.Series
}

// Add accumulates a consumption series element-wise. Null entries are
// substituted with zero; the count of substitutions is returned so the
// repair stays observable.
func (a *Accumulator) Add(s model.Series) (int, error) {
	clean, subs := s.Sanitize()
	if err := model.AddInPlace(a.Hourly, clean, "carrier "+a.Carrier.Name); err != nil {
		return subs, err
	}
	return subs, nil
}

// AccumulatorSet holds the per-carrier accumulators of one building.
type AccumulatorSet struct {
	cat           *catalogue.Catalogue
	steps         int
	byID          map[int]*Accumulator
	Substitutions int
}

// NewAccumulatorSet creates an empty set for the given timestep count.
func NewAccumulatorSet(cat *catalogue.Catalogue, steps int) *AccumulatorSet {
	return &AccumulatorSet{cat: cat, steps: steps, byID: make(map[int]*Accumulator)}
}

// Get returns the accumulator for a carrier id, creating it from the
// catalogue on first use.
func (s *AccumulatorSet) Get(carrierID int) (*Accumulator, error) {
	if a, ok := s.byID[carrierID]; ok {
		return a, nil
	}
	c, err := s.cat.Carrier(carrierID)
	if err != nil {
		return nil, err
	}
	a := &Accumulator{Carrier: c, Hourly: model.Zeros(s.steps)}
	s.byID[carrierID] = a
	return a, nil
}

// Add accumulates a series into a carrier's accumulator.
func (s *AccumulatorSet) Add(carrierID int, series model.Series) error {
	a, err := s.Get(carrierID)
	if err != nil {
		return err
	}
	subs, err := a.Add(series)
	s.Substitutions += subs
	return err
}

// All returns every accumulator ordered by carrier id.
func (s *AccumulatorSet) All() []*Accumulator {
	out := make([]*Accumulator, 0, len(s.byID))
	for _, a := range s.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Carrier.ID < out[j].Carrier.ID })
	return out
}

// NonZero returns accumulators holding any positive energy, ordered by
// carrier id. Used for the final-energy reporting entries.
func (s *AccumulatorSet) NonZero() []*Accumulator {
	out := make([]*Accumulator, 0, len(s.byID))
	for _, a := range s.All() {
		for _, v := range a.Hourly {
			if v > 0 {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// KPISource binds a carrier's accumulated energy to national conversion
// factors for one country.
type KPISource struct {
	Carrier *model.EnergyCarrier
	Energy  model.Series
	Factors model.NationalFactors
}

// PrimaryRenewable returns the renewable primary energy series (kWh).
func (k KPISource) PrimaryRenewable() model.Series {
	return k.Energy.Scaled(k.Factors.PEFRen)
}

// PrimaryNonRenewable returns the non-renewable primary energy series (kWh).
func (k KPISource) PrimaryNonRenewable() model.Series {
	return k.Energy.Scaled(k.Factors.PEFNonRen)
}

// HouseholdCosts returns the household cost series.
func (k KPISource) HouseholdCosts() model.Series {
	return k.Energy.Scaled(k.Factors.CostHousehold)
}

// NonHouseholdCosts returns the non-household cost series.
func (k KPISource) NonHouseholdCosts() model.Series {
	return k.Energy.Scaled(k.Factors.CostNonHousehold)
}

// CO2 returns the emission series in grams.
func (k KPISource) CO2() model.Series {
	return k.Energy.Scaled(k.Factors.CO2PerKWh)
}
