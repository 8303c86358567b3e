// Package ingest parses the catalogue and context inputs the engines
// consume: generation systems, energy carriers, the action mapping
// table and community context documents.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"energy_community/internal/catalogue"
	"energy_community/internal/model"
)

// LoadSystems decodes a generation-system catalogue from JSON. The
// accepted shape is either a bare array or an object keyed
// "generation_system".
func LoadSystems(r io.Reader) ([]*model.GenerationSystem, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read systems catalogue: %w", err)
	}

	var systems []*model.GenerationSystem
	if err := json.Unmarshal(raw, &systems); err == nil {
		return systems, nil
	}

	var wrapped struct {
		Systems []*model.GenerationSystem `json:"generation_system"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode systems catalogue: %w", err)
	}
	if wrapped.Systems == nil {
		return nil, fmt.Errorf("systems catalogue: no generation_system entries found")
	}
	return wrapped.Systems, nil
}

// LoadCarriers decodes an energy-carrier catalogue from JSON, bare
// array or wrapped in "energy_carrier".
func LoadCarriers(r io.Reader) ([]*model.EnergyCarrier, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read carriers catalogue: %w", err)
	}

	var carriers []*model.EnergyCarrier
	if err := json.Unmarshal(raw, &carriers); err == nil {
		return carriers, nil
	}

	var wrapped struct {
		Carriers []*model.EnergyCarrier `json:"energy_carrier"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode carriers catalogue: %w", err)
	}
	if wrapped.Carriers == nil {
		return nil, fmt.Errorf("carriers catalogue: no energy_carrier entries found")
	}
	return wrapped.Carriers, nil
}

// LoadCatalogue combines both catalogue inputs.
func LoadCatalogue(systems, carriers io.Reader) (*catalogue.Catalogue, error) {
	sys, err := LoadSystems(systems)
	if err != nil {
		return nil, err
	}
	car, err := LoadCarriers(carriers)
	if err != nil {
		return nil, err
	}
	return catalogue.New(sys, car), nil
}

// LoadContext decodes one community context document.
func LoadContext(r io.Reader) (*model.CommunityContext, error) {
	var ctx model.CommunityContext
	if err := json.NewDecoder(r).Decode(&ctx); err != nil {
		return nil, fmt.Errorf("decode community context: %w", err)
	}
	return &ctx, nil
}

// LoadRecommendations decodes a recommendation list. Both a bare array
// and the index-keyed object form ({"0": {...}, "1": {...}}) are
// accepted.
func LoadRecommendations(r io.Reader) ([]model.Recommendation, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read recommendations: %w", err)
	}

	var recs []model.Recommendation
	if err := json.Unmarshal(raw, &recs); err == nil {
		return recs, nil
	}

	var keyed map[int]model.Recommendation
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}
	out := make([]model.Recommendation, 0, len(keyed))
	for i := 0; i < len(keyed); i++ {
		rec, ok := keyed[i]
		if !ok {
			return nil, fmt.Errorf("recommendations: missing index %d", i)
		}
		out = append(out, rec)
	}
	return out, nil
}
