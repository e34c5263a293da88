package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Fields each endpoint must send. A missing or null value means the body is
// not the expected response, even if it decodes.
var (
	popularFields = []string{"popular_teams", "nations", "tournaments"}
	searchFields  = []string{"suggestions"}
	reportFields  = []string{"meta", "data", "data.selected_packages"}
)

// requireFields checks that every dotted path in fields names a non-null
// value in the JSON object body.
func requireFields(body []byte, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return fmt.Errorf("expected a JSON object: %w", err)
	}

	for _, field := range fields {
		if !hasField(root, strings.Split(field, ".")) {
			return fmt.Errorf("missing field %q", field)
		}
	}
	return nil
}

func hasField(obj map[string]json.RawMessage, path []string) bool {
	raw, ok := obj[path[0]]
	if !ok || isNull(raw) {
		return false
	}
	if len(path) == 1 {
		return true
	}

	var child map[string]json.RawMessage
	if err := json.Unmarshal(raw, &child); err != nil {
		return false
	}
	return hasField(child, path[1:])
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
