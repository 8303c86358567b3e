package scenario

import (
	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// Community asset capacity defaults.
const (
	storageCapacity = 1000
	windCapacity    = 20000
	chpCapacity     = 20000
	// nominalAvailability is the flat hourly availability assumed for
	// storage and CHP.
	nominalAvailability = 100
)

// communityAssets assembles the scenario's community asset list: every
// asset already attached to a node, a fresh grid asset, plus one asset
// per community-level action that is not already present.
func (e *Engine) communityAssets(ctx *model.CommunityContext, keys []int) []*model.CommunityEnergyAsset {
	var assets []*model.CommunityEnergyAsset
	for _, node := range ctx.Nodes {
		assets = append(assets, node.AssetInputs...)
	}
	assets = append(assets, e.gridAsset())

	for _, key := range keys {
		if key != ActionWind && key != ActionCHP && key != ActionStorage {
			continue
		}
		label := model.SlotElectricity.Label()
		if key == ActionStorage {
			label = "storage"
		}
		newID, ok := e.Actions.ReplacementFor(key, label)
		if !ok {
			continue
		}
		// Re-running the same scenario must not duplicate community
		// assets.
		if assetExists(assets, newID) {
			continue
		}
		if a := e.newCommunityAsset(key, newID); a != nil {
			assets = append(assets, a)
		}
	}
	return assets
}

// gridAsset is always created fresh, anchored at the community
// centroid.
func (e *Engine) gridAsset() *model.CommunityEnergyAsset {
	sys, _ := e.Catalogue.System(catalogue.GridSystemID)
	return &model.CommunityEnergyAsset{
		GenerationSystemID: catalogue.GridSystemID,
		InputNode: &model.Node{
			Geom: e.centroid(),
			Name: "GRID",
		},
		System: sys,
	}
}

func (e *Engine) newCommunityAsset(key, systemID int) *model.CommunityEnergyAsset {
	sys, err := e.Catalogue.System(systemID)
	if err != nil {
		return nil
	}

	var (
		name         string
		capacity     float64
		availability model.Series
	)
	switch key {
	case ActionStorage:
		name = "storage"
		capacity = storageCapacity
		availability = model.Constant(TimestepCount, nominalAvailability)
	case ActionWind:
		name = "wind"
		capacity = windCapacity
		availability = e.Resource.WindPotential()
	case ActionCHP:
		name = "chp"
		capacity = chpCapacity
		availability = model.Constant(TimestepCount, nominalAvailability)
	default:
		return nil
	}

	node := &model.Node{Geom: e.centroid(), Name: name}
	return &model.CommunityEnergyAsset{
		GenerationSystemID: systemID,
		PMaxMinScalar:      0,
		PMaxMaxScalar:      capacity,
		Name:               name,
		InputNode:          node,
		OutputNode:         node,
		Availability:       &model.AvailabilityTS{Input1: availability},
		System:             sys,
	}
}

func (e *Engine) centroid() string {
	if e.Resource != nil {
		return e.Resource.Centroid
	}
	return ""
}

// assetExists reports whether any asset in the list already uses the
// generation system.
func assetExists(assets []*model.CommunityEnergyAsset, systemID int) bool {
	for _, a := range assets {
		if a.GenerationSystemID == systemID {
			return true
		}
	}
	return false
}

// assignCommunityTempIDs numbers community assets sequentially. Nodes
// share a single topology point for now, so every node keeps id 1.
func assignCommunityTempIDs(assets []*model.CommunityEnergyAsset) {
	id := 1
	for _, a := range assets {
		a.TempID = id
		if a.Availability != nil {
			a.Availability.TempID = id
		}
		if a.InputNode != nil {
			a.InputNode.TempID = 1
		}
		if a.OutputNode != nil {
			a.OutputNode.TempID = 1
		}
		id++
	}
}
