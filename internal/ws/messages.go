package ws

import (
	"encoding/json"

	"energy_community/internal/model"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants. The socket is server-to-client only: clients
// subscribe and receive run progress while scenario and indicator runs
// execute over the HTTP API.
const (
	TypeRunStarted      = "run:started"
	TypeScenarioCreated = "scenario:created"
	TypeBuildingKPIs    = "building:kpis"
	TypeCommunityKPIs   = "community:kpis"
	TypeRunFinished     = "run:finished"
)

// Run kinds for run:started / run:finished.
const (
	RunScenario   = "scenario"
	RunIndicators = "indicators"
)

type RunStartedPayload struct {
	Kind      string `json:"kind"`
	ContextID int    `json:"context_id"`
}

type ScenarioCreatedPayload struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	ContextParent int    `json:"context_parent"`
	TempID        int    `json:"temp_id"`
	Goal          int    `json:"goal"`
	CreationDate  string `json:"creation_date"`
	TimestepCount int    `json:"timestep_count"`
}

type BuildingKPIsPayload struct {
	BuildingID int              `json:"building_id"`
	Entries    []model.KPIEntry `json:"entries"`
}

type CommunityKPIsPayload struct {
	Values map[string]model.KPIValue `json:"values"`
}

type FailureInfo struct {
	BuildingID int    `json:"building_id"`
	Error      string `json:"error"`
}

type RunFinishedPayload struct {
	Kind          string        `json:"kind"`
	Buildings     int           `json:"buildings"`
	Failures      []FailureInfo `json:"failures,omitempty"`
	Substitutions int           `json:"substitutions"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func ScenarioCreatedFromContext(ctx *model.CommunityContext) ScenarioCreatedPayload {
	return ScenarioCreatedPayload{
		Name:          ctx.Name,
		Description:   ctx.Description,
		ContextParent: ctx.ContextParent,
		TempID:        ctx.TempID,
		Goal:          ctx.Goal,
		CreationDate:  ctx.CreationDate,
		TimestepCount: ctx.TimestepCount,
	}
}
