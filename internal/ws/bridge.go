package ws

import (
	"log"

	"energy_community/internal/kpi"
	"energy_community/internal/model"
)

// Bridge publishes run progress to the WebSocket hub. A nil Bridge
// drops every event, so callers never have to guard for it.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) broadcast(msgType string, payload any) {
	if b == nil || b.hub == nil {
		return
	}
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		log.Printf("Error marshaling %s message: %v", msgType, err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) RunStarted(kind string, contextID int) {
	b.broadcast(TypeRunStarted, RunStartedPayload{Kind: kind, ContextID: contextID})
}

func (b *Bridge) ScenarioCreated(ctx *model.CommunityContext) {
	b.broadcast(TypeScenarioCreated, ScenarioCreatedFromContext(ctx))
}

func (b *Bridge) BuildingKPIs(buildingID int, entries []model.KPIEntry) {
	b.broadcast(TypeBuildingKPIs, BuildingKPIsPayload{BuildingID: buildingID, Entries: entries})
}

func (b *Bridge) CommunityKPIs(values map[string]model.KPIValue) {
	b.broadcast(TypeCommunityKPIs, CommunityKPIsPayload{Values: values})
}

func (b *Bridge) RunFinished(kind string, buildings int, failures []kpi.BuildingFailure, substitutions int) {
	payload := RunFinishedPayload{Kind: kind, Buildings: buildings, Substitutions: substitutions}
	for _, f := range failures {
		payload.Failures = append(payload.Failures, FailureInfo{BuildingID: f.BuildingID, Error: f.Err.Error()})
	}
	b.broadcast(TypeRunFinished, payload)
}
