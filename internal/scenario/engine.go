// Package scenario transforms a community context by applying
// recommended actions: building systems are replaced, sized assets are
// created, community assets are added idempotently and the resulting
// context is stamped as a new scenario.
package scenario

import (
	"fmt"
	"log/slog"
	"time"

	"energy_community/internal/catalogue"
	"energy_community/internal/kpi"
	"energy_community/internal/model"
	"energy_community/internal/solar"
)

// Scenario metadata defaults: one year of hourly steps.
const (
	StartDate          = "2023-01-01"
	TimestepCount      = solar.HoursPerYear
	TimestepDurationMS = 3600000
)

// Community-level action keys.
const (
	ActionWind    = 4
	ActionCHP     = 14
	ActionStorage = 15
)

// buildingLevelKeys are the actions that may change building systems.
// Keys 1 (demand reduction) and 2 (demand response) are accepted but
// not yet populated; they pass through without changes.
var buildingLevelKeys = map[int]bool{
	1: true, 2: true, 3: true, 7: true, 8: true, 9: true, 10: true, 19: true, 21: true,
}

// communityOnlyKeys never change individual buildings.
var communityOnlyKeys = map[int]bool{
	ActionWind: true, ActionCHP: true, ActionStorage: true, 16: true, 21: true,
}

// Engine applies recommended actions to community contexts.
type Engine struct {
	Catalogue *catalogue.Catalogue
	Actions   *catalogue.ActionTable
	Resource  *solar.Resource
	Logger    *slog.Logger
	// Now is the clock used for the creation-date stamp. Defaults to
	// time.Now.
	Now func() time.Time
}

// Result is the outcome of one scenario transformation.
type Result struct {
	Context *model.CommunityContext
	// Applied lists the distinct building-level action keys that were
	// applied, in application order.
	Applied []int
	// Failures holds per-building diagnostics. A failed building keeps
	// its original systems.
	Failures []kpi.BuildingFailure
}

// Apply builds the child scenario from a deep copy of ctx and returns
// it. The parent document is left untouched.
func (e *Engine) Apply(ctx *model.CommunityContext, goal int, recs []model.Recommendation) (*Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := e.Now
	if now == nil {
		now = time.Now
	}
	ctx = ctx.Clone()

	keys := make([]int, 0, len(recs))
	for _, rec := range recs {
		if rec.ID == nil {
			logger.Error("recommendation missing id, skipped", "action_name", rec.ActionName)
			continue
		}
		keys = append(keys, *rec.ID)
	}

	ctx.ContextParent = ctx.ID
	ctx.TempID = ctx.ID + 1
	ctx.ID = 0
	ctx.Goal = goal

	result := &Result{Context: ctx}
	applied := make(map[int]bool)

	tempID := 1
	for _, b := range ctx.Buildings {
		if b.Profile == nil {
			logger.Warn("building has no generation system profile, left untouched", "building_id", buildingID(b))
			continue
		}

		buildingApplied, err := e.applyBuildingActions(b, keys)
		for _, k := range buildingApplied {
			if !applied[k] {
				applied[k] = true
				result.Applied = append(result.Applied, k)
			}
		}
		if err != nil {
			logger.Error("scenario transformation failed for building", "building_id", buildingID(b), "error", err)
			result.Failures = append(result.Failures, kpi.BuildingFailure{BuildingID: buildingID(b), Err: err})
			continue
		}

		if id := buildingID(b); id != 0 {
			b.TempID = id
		}
		b.ContextID = ctx.TempID
		if len(buildingApplied) > 0 && b.Name != "" {
			b.Name += fmt.Sprintf(" with action %d_ ", buildingApplied[len(buildingApplied)-1])
		}
		b.ConsumptionTempID = tempID
		if b.Consumption != nil {
			b.Consumption.TempID = tempID
		}
		b.ProfileID = nil
		tempID++
	}

	ctx.CommunityAssets = e.communityAssets(ctx, keys)
	assignCommunityTempIDs(ctx.CommunityAssets)
	assignBuildingAssetTempIDs(ctx.Buildings)

	name := "scenario_"
	for _, k := range result.Applied {
		name += fmt.Sprintf("_%d_", k)
	}
	ctx.Name = fmt.Sprintf("%d_%s", ctx.ContextParent, name)
	ctx.Description = ctx.Name + fmt.Sprintf("_with_goal_%d", goal)
	ctx.StartDate = StartDate
	ctx.TimestepCount = TimestepCount
	ctx.TimestepDurationMS = TimestepDurationMS
	ctx.CreationDate = now().Format("2006-01-02 15:04:05")

	return result, nil
}

// applyBuildingActions runs every building-level action against one
// building, in recommendation order. It returns the keys that applied.
func (e *Engine) applyBuildingActions(b *model.BuildingContext, keys []int) ([]int, error) {
	prior := b.Profile.SlotIDs()
	var (
		applied   []int
		demand    *model.DemandProfile
		newSystem bool
	)

	for _, key := range keys {
		if key == 1 || key == 2 {
			// Demand reduction and demand response: accepted, not yet
			// populated.
			continue
		}
		if communityOnlyKeys[key] || !buildingLevelKeys[key] {
			continue
		}
		applied = append(applied, key)

		var err error
		demand, err = kpi.DeriveDemand(b)
		if err != nil {
			return applied, err
		}

		// Materialize the building's current thermal systems as explicit
		// assets sized to the demand peak. Key 3 (solar fleet) touches
		// only the electricity slot and skips this.
		if key != 3 {
			if err := e.materializeCurrentSystems(b, demand); err != nil {
				return applied, err
			}
		}

		changed, err := e.replaceSlots(b, key, demand)
		if err != nil {
			return applied, err
		}
		newSystem = newSystem || changed
	}

	b.Assets = removeDuplicateAssets(prior, b.Assets)

	if newSystem {
		recomputeConsumption(b, demand)
	}
	return applied, nil
}

// replaceSlots resolves and applies the action's replacement system for
// every slot with a current assignment. Returns whether any slot
// actually changed.
func (e *Engine) replaceSlots(b *model.BuildingContext, key int, demand *model.DemandProfile) (bool, error) {
	changed := false
	for _, slot := range model.AllSlots {
		cur := b.Profile.SystemID(slot)
		if cur == nil {
			continue
		}
		newID, ok := e.Actions.ReplacementFor(key, slot.Label())
		if !ok || newID == *cur {
			continue
		}
		sys, err := e.Catalogue.System(newID)
		if err != nil {
			return changed, &model.ConfigurationError{
				BuildingID: buildingID(b),
				Msg:        fmt.Sprintf("action %d resolves %s to unknown system %d", key, slot, newID),
			}
		}

		if slot == model.SlotElectricity {
			asset := e.newElectricAsset(sys, b)
			grid, err := e.Catalogue.System(catalogue.GridSystemID)
			if err != nil {
				return changed, err
			}
			// The new asset supplies load; the grid stays the nominal
			// electricity supplier of record.
			b.Profile.SetSystem(slot, grid)
			stampSlot(asset, slot, sys.ID)
			b.Assets = append(b.Assets, asset)
		} else {
			capacity := sizeFromPeak(slot, demand.BySlot(slot))
			asset := e.newThermalAsset(sys, capacity, demand.BySlot(slot), b, slot)
			b.Profile.SetSystem(slot, sys)
			stampSlot(asset, slot, sys.ID)
			b.Assets = append(b.Assets, asset)
		}
		changed = true
	}
	return changed, nil
}

// materializeCurrentSystems adds an asset per assigned thermal system,
// sized to the full demand peak.
func (e *Engine) materializeCurrentSystems(b *model.BuildingContext, demand *model.DemandProfile) error {
	for _, slot := range model.ThermalSlots {
		sid := b.Profile.SystemID(slot)
		if sid == nil {
			continue
		}
		sys, err := e.Catalogue.System(*sid)
		if err != nil {
			return &model.ConfigurationError{
				BuildingID: buildingID(b),
				Msg:        fmt.Sprintf("current %s system %d is not in the catalogue", slot, *sid),
			}
		}
		slotDemand := demand.BySlot(slot)
		asset := e.newThermalAsset(sys, slotDemand.Peak(), slotDemand, b, slot)
		stampSlot(asset, slot, sys.ID)
		b.Assets = append(b.Assets, asset)
	}
	return nil
}

// recomputeConsumption inverts the demand derivation with the new
// systems' yields: a different efficiency changes how much input energy
// the same end-use demand requires.
func recomputeConsumption(b *model.BuildingContext, demand *model.DemandProfile) {
	if demand == nil {
		return
	}
	steps := len(demand.Electricity)
	cons := &model.ConsumptionProfile{
		TempID:      b.ConsumptionTempID,
		Electricity: demand.Electricity.Clone(),
		Heating:     model.Zeros(steps),
		Cooling:     model.Zeros(steps),
		DHW:         model.Zeros(steps),
	}
	for _, slot := range model.ThermalSlots {
		sys := b.Profile.System(slot)
		if sys == nil || sys.FuelYield1 <= 0 {
			continue
		}
		scaled := demand.BySlot(slot).Scaled(1 / sys.FuelYield1)
		switch slot {
		case model.SlotHeating:
			cons.Heating = scaled
		case model.SlotCooling:
			cons.Cooling = scaled
		case model.SlotDHW:
			cons.DHW = scaled
		}
	}
	b.Consumption = cons
}

// sizeFromPeak applies the peak-load-duration sizing heuristic: 70% of
// the demand peak for heating and DHW, 90% for cooling.
func sizeFromPeak(slot model.Slot, demand model.Series) float64 {
	peak := demand.Peak()
	if slot == model.SlotCooling {
		return 0.9 * peak
	}
	return 0.7 * peak
}

func buildingID(b *model.BuildingContext) int {
	if b.Building != nil && b.Building.ID != 0 {
		return b.Building.ID
	}
	if b.ID != 0 {
		return b.ID
	}
	return b.TempID
}

// assignBuildingAssetTempIDs numbers every building asset sequentially
// across the whole community.
func assignBuildingAssetTempIDs(buildings []*model.BuildingContext) {
	id := 1
	for _, b := range buildings {
		for _, a := range b.Assets {
			a.TempID = id
			if a.Availability != nil {
				a.Availability.TempID = id
			}
			id++
		}
	}
}
