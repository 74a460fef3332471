package devices

import (
	"fmt"

	"smarthome_gateway/internal/models"
)

// Door actions accepted at the API boundary.
const (
	DoorOpen  = "open"
	DoorClose = "close"
)

// DoorConfig is one configured door with its command letter pair.
type DoorConfig struct {
	ID    string `mapstructure:"id"`
	Open  string `mapstructure:"open"`
	Close string `mapstructure:"close"`
}

// DoorTable maps door ids to their command letter pairs. The table is
// validated once at configuration time; per-message resolution never fails
// for a configured door. Order is significant: it fixes the positional
// door fields of the SENSORS line.
type DoorTable struct {
	order   []string
	pairs   map[string]DoorConfig
	primary string
}

// NewDoorTable validates the configured doors. Letters must be non-empty
// and globally unique; the primary door must be configured.
func NewDoorTable(doors []DoorConfig, primary string) (DoorTable, error) {
	if len(doors) == 0 {
		return DoorTable{}, fmt.Errorf("at least one door must be configured")
	}
	t := DoorTable{
		pairs:   make(map[string]DoorConfig, len(doors)),
		primary: primary,
	}
	letters := make(map[string]string)
	for _, d := range doors {
		if d.ID == "" {
			return DoorTable{}, fmt.Errorf("door with empty id")
		}
		if _, dup := t.pairs[d.ID]; dup {
			return DoorTable{}, fmt.Errorf("duplicate door id %q", d.ID)
		}
		if d.Open == "" || d.Close == "" {
			return DoorTable{}, fmt.Errorf("door %q needs both open and close letters", d.ID)
		}
		for _, letter := range []string{d.Open, d.Close} {
			if owner, taken := letters[letter]; taken {
				return DoorTable{}, fmt.Errorf("letter %q used by both %q and %q", letter, owner, d.ID)
			}
			letters[letter] = d.ID
		}
		t.pairs[d.ID] = d
		t.order = append(t.order, d.ID)
	}
	if _, ok := t.pairs[primary]; !ok {
		return DoorTable{}, fmt.Errorf("primary door %q is not configured", primary)
	}
	return t, nil
}

// IDs returns the door ids in configured (wire) order.
func (t DoorTable) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Primary returns the default door id.
func (t DoorTable) Primary() string { return t.primary }

// Has reports whether a door id is configured.
func (t DoorTable) Has(id string) bool {
	_, ok := t.pairs[id]
	return ok
}

// Command resolves a door id and action to its command letter.
func (t DoorTable) Command(doorID, action string) (models.Command, error) {
	pair, ok := t.pairs[doorID]
	if !ok {
		return models.Command{}, fmt.Errorf("unknown door %q", doorID)
	}
	switch action {
	case DoorOpen:
		return models.LetterCommand(pair.Open), nil
	case DoorClose:
		return models.LetterCommand(pair.Close), nil
	default:
		return models.Command{}, fmt.Errorf("invalid door action %q", action)
	}
}

// Resolve maps a command letter back to its door id and action.
func (t DoorTable) Resolve(letter string) (doorID, action string, ok bool) {
	for _, id := range t.order {
		pair := t.pairs[id]
		switch letter {
		case pair.Open:
			return id, DoorOpen, true
		case pair.Close:
			return id, DoorClose, true
		}
	}
	return "", "", false
}
