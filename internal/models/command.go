package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Command is a controller command code: a numeric light code (1..18) or a
// door letter. It marshals into the wire envelope exactly as the controller
// expects: numbers stay numbers, letters stay strings.
type Command struct {
	num    int
	letter string
}

// NumCommand wraps a numeric light command code.
func NumCommand(n int) Command { return Command{num: n} }

// LetterCommand wraps a door letter command.
func LetterCommand(s string) Command { return Command{letter: s} }

// IsZero reports whether no command is set.
func (c Command) IsZero() bool { return c.num == 0 && c.letter == "" }

// Num returns the numeric code and whether the command is numeric.
func (c Command) Num() (int, bool) { return c.num, c.letter == "" && c.num != 0 }

// Letter returns the door letter and whether the command is a letter.
func (c Command) Letter() (string, bool) { return c.letter, c.letter != "" }

func (c Command) String() string {
	if c.letter != "" {
		return c.letter
	}
	return strconv.Itoa(c.num)
}

func (c Command) MarshalJSON() ([]byte, error) {
	if c.letter != "" {
		return json.Marshal(c.letter)
	}
	return json.Marshal(c.num)
}

func (c *Command) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*c = Command{num: n}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		// Numeric strings still mean numeric codes.
		if n, convErr := strconv.Atoi(s); convErr == nil {
			*c = Command{num: n}
			return nil
		}
		*c = Command{letter: s}
		return nil
	}
	return fmt.Errorf("command must be a number or a letter, got %s", string(b))
}

// Envelope is the outbound gateway→controller message.
type Envelope struct {
	Command Command `json:"command"`
}
