package transport

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// Response headers naming client-side triggers.
const (
	HeaderTrigger          = "HX-Trigger"
	HeaderTriggerAfterSwap = "HX-Trigger-After-Swap"
)

// parseTriggers reads a trigger header value. It is either a comma
// separated list of names or a JSON object keyed by name.
func parseTriggers(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	if strings.HasPrefix(value, "{") {
		var detail map[string]json.RawMessage
		if err := json.Unmarshal([]byte(value), &detail); err == nil {
			names := make([]string, 0, len(detail))
			for name := range detail {
				names = append(names, name)
			}
			sort.Strings(names)
			return names
		}
	}

	var names []string
	for _, name := range strings.Split(value, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// responseTriggers lists the triggers of a response in firing order.
func responseTriggers(h http.Header) []string {
	names := parseTriggers(h.Get(HeaderTrigger))
	return append(names, parseTriggers(h.Get(HeaderTriggerAfterSwap))...)
}
