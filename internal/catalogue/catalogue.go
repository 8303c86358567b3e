// Package catalogue resolves generation-system definitions and maps
// recommended actions to replacement system ids.
package catalogue

import (
	"sort"
	"strings"

	"energy_community/internal/model"
)

// Catalogue indexes generation systems and energy carriers by id.
type Catalogue struct {
	systems  map[int]*model.GenerationSystem
	carriers map[int]*model.EnergyCarrier
}

// New builds a catalogue from already-parsed records. Ids are unique
// within the catalogue; a duplicate keeps the first record.
func New(systems []*model.GenerationSystem, carriers []*model.EnergyCarrier) *Catalogue {
	c := &Catalogue{
		systems:  make(map[int]*model.GenerationSystem, len(systems)),
		carriers: make(map[int]*model.EnergyCarrier, len(carriers)),
	}
	for _, s := range systems {
		if _, ok := c.systems[s.ID]; !ok {
			c.systems[s.ID] = s
		}
	}
	for _, ec := range carriers {
		if _, ok := c.carriers[ec.ID]; !ok {
			c.carriers[ec.ID] = ec
		}
	}
	return c
}

// System looks up a generation system by id.
func (c *Catalogue) System(id int) (*model.GenerationSystem, error) {
	s, ok := c.systems[id]
	if !ok {
		return nil, &model.LookupError{Kind: "generation_system", ID: id}
	}
	return s, nil
}

// SystemCount reports the number of indexed generation systems.
func (c *Catalogue) SystemCount() int {
	return len(c.systems)
}

// Carrier looks up an energy carrier by id.
func (c *Catalogue) Carrier(id int) (*model.EnergyCarrier, error) {
	ec, ok := c.carriers[id]
	if !ok {
		return nil, &model.LookupError{Kind: "energy_carrier", ID: id}
	}
	return ec, nil
}

// FinalCarriers returns every carrier flagged final, ordered by id.
func (c *Catalogue) FinalCarriers() []*model.EnergyCarrier {
	out := make([]*model.EnergyCarrier, 0, len(c.carriers))
	for _, ec := range c.carriers {
		if ec.Final {
			out = append(out, ec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActionRow is one row of the action-to-generation-system mapping table.
type ActionRow struct {
	ActionKey  int
	SystemType string // e.g. "electricity_system_id", "storage"
	ID         ActionID
}

// ActionTable maps action keys to replacement system ids per system-type
// label.
type ActionTable struct {
	rows []ActionRow
}

// NewActionTable wraps parsed rows, preserving order.
func NewActionTable(rows []ActionRow) *ActionTable {
	return &ActionTable{rows: rows}
}

// ReplacementFor returns the replacement system id for an action key and
// system-type label. The label matches by case-sensitive substring
// against the row's system-type column; the first matching row wins.
// A miss is recoverable and reported via ok=false.
func (t *ActionTable) ReplacementFor(actionKey int, label string) (int, bool) {
	for _, row := range t.rows {
		if row.ActionKey != actionKey {
			continue
		}
		if !strings.Contains(row.SystemType, label) {
			continue
		}
		if id, ok := row.ID.Normalize(); ok {
			return id, true
		}
	}
	return 0, false
}
