package views

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"wvtrace/internal/record"
)

// Detail projects one call into a structured outline: duration, local call
// time, an inputs section, and either an error section (type and message,
// not the traceback) or an output section. Composite values expand into
// nested nodes with no depth limit.
func Detail(rec *record.CallRecord) DetailNode {
	root := DetailNode{Label: rec.Function}
	root.Children = append(root.Children,
		DetailNode{Label: "duration", Value: fmt.Sprintf("%.4fs", rec.DurationS)},
		DetailNode{Label: "time", Value: callTime(rec.TimestampStart)},
	)

	inputs := DetailNode{Label: "inputs"}
	for _, key := range sortedKeys(rec.Inputs) {
		inputs.Children = append(inputs.Children, valueNode(key, rec.Inputs[key]))
	}
	root.Children = append(root.Children, inputs)

	if rec.Err != nil {
		errNode := DetailNode{Label: "error"}
		if rec.Err.Legacy {
			errNode.Children = append(errNode.Children,
				DetailNode{Label: "message", Value: rec.Err.Message})
		} else {
			errNode.Children = append(errNode.Children,
				DetailNode{Label: "type", Value: rec.Err.Type},
				DetailNode{Label: "message", Value: rec.Err.Message})
		}
		root.Children = append(root.Children, errNode)
	} else {
		root.Children = append(root.Children, valueNode("output", rec.Output))
	}
	return root
}

// valueNode renders one JSON-like value: maps and arrays recurse into
// children, everything else becomes its JSON text.
func valueNode(label string, v any) DetailNode {
	switch val := v.(type) {
	case map[string]any:
		node := DetailNode{Label: label}
		for _, key := range sortedKeys(val) {
			node.Children = append(node.Children, valueNode(key, val[key]))
		}
		return node
	case []any:
		node := DetailNode{Label: label}
		for i, item := range val {
			node.Children = append(node.Children, valueNode(fmt.Sprintf("[%d]", i), item))
		}
		return node
	default:
		return DetailNode{Label: label, Value: jsonText(v)}
	}
}

// jsonText renders a value as its JSON text, falling back to %v for values
// a log line cannot legally contain.
func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func callTime(epochSeconds float64) string {
	sec, frac := math.Modf(epochSeconds)
	return time.Unix(int64(sec), int64(frac*1e9)).Local().Format("2006-01-02 15:04:05")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
