// Package planning holds the pure plan pipeline: parsing generator output, resolving
// exercise references against the catalog, deterministic fallbacks and text rendering.
package planning

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/zatekoja/coachplan/internal/domain/entities"
)

var (
	fencedBlockRe = regexp.MustCompile("(?is)```(?:json)?(.*?)```")
	objectSpanRe  = regexp.MustCompile(`\{[\s\S]*\}`)
	arraySpanRe   = regexp.MustCompile(`\[[\s\S]*\]`)
	digitRunRe    = regexp.MustCompile(`\d+`)
	blankLineRe   = regexp.MustCompile(`\n\s*\n`)
)

// ExtractJSONPayload pulls the JSON document out of generator output that may be wrapped
// in a fenced block or surrounded by prose. Outside a fence the first complete object or
// array literal wins, so a bare list of days is returned whole.
func ExtractJSONPayload(raw string) string {
	if raw == "" {
		return ""
	}
	if m := fencedBlockRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	if literal := firstLiteral(raw); literal != "" {
		return literal
	}
	if m := objectSpanRe.FindString(raw); m != "" {
		return m
	}
	if m := arraySpanRe.FindString(raw); m != "" {
		return m
	}
	return strings.TrimSpace(raw)
}

// firstLiteral decodes one JSON value at each '{' or '[' in turn and returns the first
// that decodes.
func firstLiteral(raw string) string {
	for offset := 0; offset < len(raw); {
		idx := strings.IndexAny(raw[offset:], "{[")
		if idx < 0 {
			return ""
		}
		start := offset + idx

		var value json.RawMessage
		if err := json.NewDecoder(strings.NewReader(raw[start:])).Decode(&value); err == nil {
			return string(value)
		}
		offset = start + 1
	}
	return ""
}

// ParseStructured turns JSON-ish generator output into an unresolved plan.
// Output that cannot be decoded yields an empty plan.
func ParseStructured(raw string) entities.UnresolvedPlan {
	payload := ExtractJSONPayload(raw)
	if payload == "" {
		return entities.UnresolvedPlan{}
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil || dec.More() {
		return entities.UnresolvedPlan{}
	}

	var daysSource []any
	switch v := data.(type) {
	case map[string]any:
		if list, ok := firstTruthy(v, "week", "days").([]any); ok {
			daysSource = list
		}
	case []any:
		daysSource = v
	}

	plan := entities.UnresolvedPlan{}
	for idx, rawDay := range daysSource {
		day, ok := rawDay.(map[string]any)
		if !ok {
			continue
		}

		name := strings.TrimSpace(stringify(firstTruthy(day, "day", "name")))
		if name == "" {
			name = defaultDayName(idx)
		}

		source, _ := firstTruthy(day, "exercises", "items").([]any)
		exercises := make([]entities.ExerciseRef, 0, len(source))
		for _, rawExercise := range source {
			exercise, ok := rawExercise.(map[string]any)
			if !ok {
				continue
			}
			exName := strings.TrimSpace(stringify(firstTruthy(exercise, "name", "exercise", "title")))
			if exName == "" {
				continue
			}
			exercises = append(exercises, entities.ExerciseRef{
				Name:  exName,
				Sets:  CoerceSets(exercise["sets"]),
				Reps:  strings.TrimSpace(stringify(firstTruthy(exercise, "reps", "rep_range"))),
				Notes: strings.TrimSpace(stringify(firstTruthy(exercise, "notes", "tempo"))),
			})
		}

		if len(exercises) > 0 {
			plan = append(plan, entities.DayBlock{Name: name, Exercises: exercises})
		}
	}

	return plan
}

// ParseText parses the legacy plain-text format:
//
//	Lunes:
//	- Sentadilla | 4x10-12
//
// Days are separated by blank lines. Sets are never present in this format.
func ParseText(content string) entities.UnresolvedPlan {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\r\n", "\n"))
	if content == "" {
		return entities.UnresolvedPlan{}
	}

	plan := entities.UnresolvedPlan{}
	for idx, block := range blankLineRe.Split(content, -1) {
		var lines []string
		for _, line := range strings.Split(block, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		name := strings.TrimSpace(strings.TrimRight(lines[0], ":"))
		if name == "" {
			name = defaultDayName(idx)
		}

		var exercises []entities.ExerciseRef
		for _, line := range lines[1:] {
			clean := strings.TrimSpace(strings.TrimLeft(line, "-*• "))
			namePart, repsPart, _ := strings.Cut(clean, "|")
			namePart = strings.TrimSpace(namePart)
			if namePart == "" {
				continue
			}
			exercises = append(exercises, entities.ExerciseRef{
				Name: namePart,
				Reps: strings.TrimSpace(repsPart),
			})
		}

		if len(exercises) > 0 {
			plan = append(plan, entities.DayBlock{Name: name, Exercises: exercises})
		}
	}

	return plan
}

// CoerceSets extracts the first run of digits found in v, or nil.
func CoerceSets(v any) *int {
	if v == nil {
		return nil
	}
	match := digitRunRe.FindString(stringify(v))
	if match == "" {
		return nil
	}
	n := 0
	for _, r := range match {
		n = n*10 + int(r-'0')
		if n > 1<<20 {
			return nil
		}
	}
	return &n
}

func defaultDayName(idx int) string {
	return fmt.Sprintf("Dia %d", idx+1)
}

// firstTruthy returns the first value among keys that is present and non-empty.
func firstTruthy(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case bool:
		return t
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
