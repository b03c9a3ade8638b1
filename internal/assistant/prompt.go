package assistant

import "fmt"

// TruncationMarker is appended whenever source text is cut to fit a prompt.
const TruncationMarker = "…"

// boundarySearchFraction controls how far back from the hard limit a cut may
// move to land on a sentence or line boundary.
const boundarySearchFraction = 0.8

// Truncate cuts text to at most maxChars characters, appending the
// truncation marker when anything was removed. When a sentence or line
// boundary exists past 80% of the limit the cut moves back to it, so
// prompts end on whole sentences where possible.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	cut := runes[:maxChars]
	threshold := int(float64(maxChars) * boundarySearchFraction)

	if at := lastBoundary(cut, threshold); at > 0 {
		cut = cut[:at]
	}
	// A sentence-boundary cut lands just past the ". " separator; drop the
	// separator space so the marker sits flush against the sentence.
	for len(cut) > 0 && cut[len(cut)-1] == ' ' {
		cut = cut[:len(cut)-1]
	}
	return string(cut) + TruncationMarker
}

// lastBoundary returns the index just past the last sentence or line
// boundary at or after threshold, or 0 when none exists.
func lastBoundary(runes []rune, threshold int) int {
	for i := len(runes) - 1; i > threshold; i-- {
		switch runes[i] {
		case '\n':
			return i + 1
		case ' ':
			prev := runes[i-1]
			if prev == '.' || prev == '!' || prev == '?' {
				return i + 1
			}
		}
	}
	return 0
}

// FormatScriptPrompt builds the script-formatting prompt. Output is
// deterministic: identical input text and limit yield identical bytes.
func FormatScriptPrompt(script string, maxChars int) string {
	return fmt.Sprintf(`You are a professional screenplay editor. Reformat the following script excerpt to standard screenplay conventions and flag issues.

Respond with ONLY a JSON object of this exact shape:
{"formattedScript": string, "issues": [{"type": string, "description": string, "suggestion": string, "line": number}], "improvements": [{"category": string, "description": string, "suggestion": string}], "summary": {"totalPages": number, "estimatedDuration": number, "characterCount": number, "sceneCount": number}}

Script:
%s`, Truncate(script, maxChars))
}

// BreakdownPrompt builds the scene-breakdown prompt.
func BreakdownPrompt(script string, maxChars int) string {
	return fmt.Sprintf(`You are a film production manager. Break down the following script excerpt into production elements.

Respond with ONLY a JSON object of this exact shape:
{"elements": [{"type": string, "name": string, "description": string, "notes": string, "priority": string, "estimatedCost": number}], "locations": [{"name": string, "type": string, "description": string, "requirements": [string], "estimatedCost": number}], "characters": [{"name": string, "description": string, "costume": [string], "props": [string], "specialRequirements": string}], "technical": {"lighting": [string], "sound": [string], "camera": [string], "specialEffects": [string]}, "summary": {"totalElements": number, "estimatedBudget": number, "complexity": string, "specialRequirements": [string]}}

Script:
%s`, Truncate(script, maxChars))
}

// ShotlistPrompt builds the shot-list prompt.
func ShotlistPrompt(script string, maxChars int) string {
	return fmt.Sprintf(`You are a director of photography. Plan a shot list for the following script excerpt.

Respond with ONLY a JSON object of this exact shape:
{"shots": [{"shotNumber": number, "shotType": string, "angle": string, "movement": string, "description": string, "duration": number, "characters": [string], "props": [string], "location": string, "lighting": string, "camera": {"lens": string, "settings": string, "filters": [string]}, "notes": string, "difficulty": string, "estimatedTime": number}], "coverage": {"totalShots": number, "estimatedDuration": number, "complexity": string, "specialEquipment": [string]}, "schedule": {"estimatedDays": number, "dailyShots": [number], "priority": [string]}}

Script:
%s`, Truncate(script, maxChars))
}

// CallsheetPrompt builds the call-sheet prompt.
func CallsheetPrompt(dayBrief string, maxChars int) string {
	return fmt.Sprintf(`You are a first assistant director. Produce a call sheet for the shooting day described below.

Respond with ONLY a JSON object of this exact shape:
{"production": {"title": string, "date": string, "day": number, "weather": string, "sunrise": string, "sunset": string}, "schedule": {"callTime": string, "wrapTime": string, "lunchTime": string, "totalHours": number}, "locations": [string], "cast": [string], "crew": [string], "equipment": {"camera": [string], "lighting": [string], "sound": [string], "grip": [string], "special": [string]}, "transportation": [string], "meals": {"breakfast": string, "lunch": string, "dinner": string, "craftServices": string}, "safety": {"hazards": [string], "precautions": [string], "emergencyContacts": [string]}, "notes": [string]}

Shooting day:
%s`, Truncate(dayBrief, maxChars))
}

// PromptFor dispatches to the task's template using the per-task limit.
func PromptFor(task Task, source string, limits PromptLimits) (string, error) {
	switch task {
	case TaskFormatScript:
		return FormatScriptPrompt(source, limits.FormatScript), nil
	case TaskBreakdown:
		return BreakdownPrompt(source, limits.Breakdown), nil
	case TaskShotlist:
		return ShotlistPrompt(source, limits.Shotlist), nil
	case TaskCallsheet:
		return CallsheetPrompt(source, limits.Callsheet), nil
	}
	return "", fmt.Errorf("unknown task %q", task)
}

// PromptLimits carries the per-task truncation limits in characters.
type PromptLimits struct {
	FormatScript int
	Breakdown    int
	Shotlist     int
	Callsheet    int
}
