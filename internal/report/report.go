// Package report transforms raw rule-engine results into the message format
// the aggregator ingests: scrubbing sensitive nodes, dropping internal
// rules, and wrapping results in the report envelope.
package report

import (
	"maps"
	"strings"
	"time"
)

// ScrubInfo returns a copy of data with any "info" node replaced by an empty
// list. The info node may carry sensitive cluster details.
func ScrubInfo(data map[string]any) map[string]any {
	out := maps.Clone(data)

	if _, ok := out["info"]; ok {
		out["info"] = []any{}
	}

	return out
}

// InternalRulePrefix marks rule results that must never leave the pipeline.
const InternalRulePrefix = "ccx_rules_ocp.internal."

// ruleSections maps result sections to the key carrying the rule name.
// The skips section uses rule_fqdn where the others use component.
var ruleSections = []struct {
	section string
	nameKey string
}{
	{"reports", "component"},
	{"pass", "component"},
	{"skips", "rule_fqdn"},
}

// FilterInternalRules returns a copy of data with internal rule entries
// removed from the reports, pass, and skips sections. Documents without a
// reports section are not rule-engine output and pass through untouched.
// trace, when non-nil, receives one note per kept rule.
func FilterInternalRules(data map[string]any, trace func(format string, args ...any)) map[string]any {
	if _, ok := data["reports"]; !ok {
		return data
	}

	out := maps.Clone(data)

	for _, s := range ruleSections {
		entries, ok := out[s.section].([]any)
		if !ok {
			continue
		}

		kept := make([]any, 0, len(entries))

		for _, e := range entries {
			entry, isMap := e.(map[string]any)
			name, _ := entry[s.nameKey].(string)

			if isMap && strings.HasPrefix(name, InternalRulePrefix) {
				continue
			}

			if trace != nil && name != "" {
				trace("keeping rule %s", name)
			}

			kept = append(kept, e)
		}

		out[s.section] = kept
	}

	return out
}

// Envelope is the report message format consumed by the aggregator. Field
// names match the aggregator's expected JSON attributes.
type Envelope struct {
	OrgID       int            `json:"OrgID"`
	ClusterName string         `json:"ClusterName"`
	LastChecked string         `json:"LastChecked"`
	Report      map[string]any `json:"Report"`
}

// Build wraps filtered results into the aggregator envelope.
func Build(data map[string]any, orgID int, clusterName string, now time.Time) Envelope {
	return Envelope{
		OrgID:       orgID,
		ClusterName: clusterName,
		LastChecked: now.UTC().Format(time.RFC3339),
		Report:      data,
	}
}
