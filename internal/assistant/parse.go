package assistant

import (
	"encoding/json"
	"errors"

	"smarthome_gateway/internal/models"
)

var (
	errNoJSON       = errors.New("no JSON object in interpreter response")
	errInvalidShape = errors.New("interpreter response does not match any action shape")
)

// ParseAction extracts the first balanced JSON object from raw interpreter
// output and decodes it into an action. The external service is not
// trusted to emit only JSON, so surrounding prose is skipped. The result
// is either a shape-valid action or an error; callers branch on the error,
// never on a panic.
func ParseAction(raw string) (models.Action, error) {
	obj, ok := firstJSONObject(raw)
	if !ok {
		return models.Action{}, errNoJSON
	}

	var a models.Action
	if err := json.Unmarshal([]byte(obj), &a); err != nil {
		return models.Action{}, err
	}
	if err := a.Validate(); err != nil {
		return models.Action{}, errInvalidShape
	}
	return a, nil
}

// firstJSONObject returns the first balanced {...} span, tracking strings
// and escapes so braces inside quoted values do not unbalance the scan.
func firstJSONObject(s string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}
	return "", false
}
