package models

import "fmt"

// ActionKind tags the closed set of interpreted command outcomes.
type ActionKind string

const (
	ActionCommand ActionKind = "command"
	ActionDoor    ActionKind = "door"
	ActionQuery   ActionKind = "query"
	ActionChat    ActionKind = "chat"
	ActionError   ActionKind = "error"
)

// Sensor names usable in query actions.
const (
	SensorTemperature = "temperature"
	SensorGas         = "gas"
	SensorMotion      = "motion"
	SensorDoor        = "door"
)

// Action is one interpreted user command. Exactly one kind is active per
// value; fields outside the active kind are meaningless.
//
//	command: Command set (numeric light code)
//	door:    Command set (door letter), Door set (door id)
//	query:   Sensor set
//	chat:    Response set
//	error:   Response set
type Action struct {
	Kind     ActionKind `json:"action"`
	Command  Command    `json:"command,omitempty"`
	Door     string     `json:"door,omitempty"`
	Sensor   string     `json:"sensor,omitempty"`
	Response string     `json:"response,omitempty"`
}

// CommandAction builds a numeric command action.
func CommandAction(code int) Action {
	return Action{Kind: ActionCommand, Command: NumCommand(code)}
}

// DoorAction builds a door action for the given door id and letter code.
func DoorAction(letter, doorID string) Action {
	return Action{Kind: ActionDoor, Command: LetterCommand(letter), Door: doorID}
}

// QueryAction builds a sensor query action.
func QueryAction(sensor string) Action {
	return Action{Kind: ActionQuery, Sensor: sensor}
}

// ChatAction builds a conversational reply action.
func ChatAction(text string) Action {
	return Action{Kind: ActionChat, Response: text}
}

// ErrorAction builds an error action.
func ErrorAction(text string) Action {
	return Action{Kind: ActionError, Response: text}
}

// Validate checks that the action's shape matches its kind.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionCommand:
		if _, ok := a.Command.Num(); !ok {
			return fmt.Errorf("command action needs a numeric command code")
		}
	case ActionDoor:
		if _, ok := a.Command.Letter(); !ok {
			return fmt.Errorf("door action needs a letter command code")
		}
	case ActionQuery:
		switch a.Sensor {
		case SensorTemperature, SensorGas, SensorMotion, SensorDoor:
		default:
			return fmt.Errorf("unknown sensor %q", a.Sensor)
		}
	case ActionChat, ActionError:
		// response may be empty; the renderer falls back to a generic ack
	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
	return nil
}
