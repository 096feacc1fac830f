package mcpserver

import (
	"encoding/json"
	"fmt"
)

// parseJSON parses a JSON string into the target type.
func parseJSON(data string, target any) error {
	return json.Unmarshal([]byte(data), target)
}

// elementsArg reads the "elements" argument, given either as a JSON array
// string or as an already decoded array.
func elementsArg(args map[string]any) ([]string, error) {
	switch v := args["elements"].(type) {
	case nil:
		return []string{}, nil
	case string:
		if v == "" {
			return []string{}, nil
		}
		var elements []string
		if err := parseJSON(v, &elements); err != nil {
			return nil, fmt.Errorf("elements must be a JSON array of strings: %w", err)
		}
		if elements == nil {
			elements = []string{}
		}
		return elements, nil
	case []any:
		elements := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("elements must contain strings, got %T", item)
			}
			elements = append(elements, s)
		}
		return elements, nil
	default:
		return nil, fmt.Errorf("elements must be an array, got %T", v)
	}
}
