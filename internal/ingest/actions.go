package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"energy_community/internal/catalogue"
)

// ParseActionsCSV reads the action-to-generation-system mapping table.
// Expected columns: action_key, name_system_type, id. Extra columns are
// ignored; an empty id yields an absent replacement.
func ParseActionsCSV(r io.Reader) (*catalogue.ActionTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read actions header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"action_key", "name_system_type", "id"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("actions table: missing column %q", required)
		}
	}

	var rows []catalogue.ActionRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read actions row: %w", err)
		}
		line++

		key, err := strconv.Atoi(record[col["action_key"]])
		if err != nil {
			return nil, fmt.Errorf("actions row %d: bad action_key %q", line, record[col["action_key"]])
		}

		id := catalogue.AbsentID()
		if raw := record[col["id"]]; raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("actions row %d: bad id %q", line, raw)
			}
			id = catalogue.SingleID(v)
		}
		rows = append(rows, catalogue.ActionRow{
			ActionKey:  key,
			SystemType: record[col["name_system_type"]],
			ID:         id,
		})
	}
	return catalogue.NewActionTable(rows), nil
}

// actionRowJSON is the JSON form of one mapping row. The id field may
// be a scalar, a list or a mapping; all three normalize to a single id.
type actionRowJSON struct {
	ActionKey  int             `json:"action_key"`
	SystemType string          `json:"name_system_type"`
	ID         json.RawMessage `json:"id"`
}

// ParseActionsJSON reads the mapping table from a JSON array.
func ParseActionsJSON(r io.Reader) (*catalogue.ActionTable, error) {
	var raw []actionRowJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode actions table: %w", err)
	}

	rows := make([]catalogue.ActionRow, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, catalogue.ActionRow{
			ActionKey:  row.ActionKey,
			SystemType: row.SystemType,
			ID:         decodeActionID(row.ID),
		})
	}
	return catalogue.NewActionTable(rows), nil
}

func decodeActionID(raw json.RawMessage) catalogue.ActionID {
	if len(raw) == 0 || string(raw) == "null" {
		return catalogue.AbsentID()
	}

	var scalar int
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return catalogue.SingleID(scalar)
	}

	var list []int
	if err := json.Unmarshal(raw, &list); err == nil {
		return catalogue.IDFromList(list)
	}

	var mapping map[string]int
	if err := json.Unmarshal(raw, &mapping); err == nil {
		return catalogue.IDFromMapping(mapping)
	}

	return catalogue.AbsentID()
}
