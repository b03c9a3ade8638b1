package assistant

import "encoding/json"

// requiredKeys lists the top-level keys a task's result must carry before
// downstream writers touch it. Presence only: values are not type-checked,
// writers tolerate missing or oddly shaped fields item by item.
var requiredKeys = map[Task][]string{
	TaskFormatScript: {"formattedScript", "summary"},
	TaskBreakdown:    {"elements", "locations", "characters"},
	TaskShotlist:     {"shots", "coverage"},
	TaskCallsheet:    {"production", "schedule", "cast", "crew"},
}

// ValidateResult reports whether raw is a JSON object carrying every
// required top-level key for the task. Unknown tasks always fail.
func ValidateResult(task Task, raw json.RawMessage) bool {
	keys, ok := requiredKeys[task]
	if !ok {
		return false
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	for _, k := range keys {
		if _, present := obj[k]; !present {
			return false
		}
	}
	return true
}
