package application

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Test case inputs are parsed by the first strategy that accepts them.

type inputParser func(raw string) ([]any, bool)

var inputParsers = []inputParser{
	parseEmptyInput,
	parseJSONValue,
	parseJSONArgumentList,
	parseRawLiteral,
}

// parseInput turns a test case input into call arguments.
func parseInput(raw string) []any {
	for _, parse := range inputParsers {
		if args, ok := parse(raw); ok {
			return args
		}
	}
	return []any{raw}
}

func parseEmptyInput(raw string) ([]any, bool) {
	if strings.TrimSpace(raw) == "" {
		return []any{}, true
	}
	return nil, false
}

// parseJSONValue accepts a single JSON document as one argument: `"racecar"`, `[1,2,3]`, `{"n":3}`.
func parseJSONValue(raw string) ([]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &v); err != nil {
		return nil, false
	}
	return []any{v}, true
}

// parseJSONArgumentList accepts comma separated JSON values as several arguments: `[2,7,11,15], 9`.
func parseJSONArgumentList(raw string) ([]any, bool) {
	var args []any
	if err := json.Unmarshal([]byte("["+strings.TrimSpace(raw)+"]"), &args); err != nil {
		return nil, false
	}
	return args, true
}

// parseRawLiteral passes the text through unchanged: `racecar`.
func parseRawLiteral(raw string) ([]any, bool) {
	return []any{strings.TrimSpace(raw)}, true
}

// Outputs match when the first comparator agrees.

type outputComparator func(actual any, expected string) bool

var outputComparators = []outputComparator{
	serializedEqual,
	coercedEqual,
	structuralEqual,
}

func outputsMatch(actual any, expected string) bool {
	for _, compare := range outputComparators {
		if compare(actual, expected) {
			return true
		}
	}
	return false
}

// serializedEqual compares the JSON form of actual with expected.
func serializedEqual(actual any, expected string) bool {
	serialized, ok := serialize(actual)
	return ok && serialized == strings.TrimSpace(expected)
}

// coercedEqual compares the string coercion of actual with expected.
func coercedEqual(actual any, expected string) bool {
	return coerceString(actual) == strings.TrimSpace(expected)
}

// structuralEqual parses expected independently and compares structures.
func structuralEqual(actual any, expected string) bool {
	var want any
	if err := json.Unmarshal([]byte(strings.TrimSpace(expected)), &want); err != nil {
		return false
	}
	serialized, ok := serialize(actual)
	if !ok {
		return false
	}
	var got any
	if err := json.Unmarshal([]byte(serialized), &got); err != nil {
		return false
	}
	return reflect.DeepEqual(got, want)
}

// serialize renders v as compact JSON without HTML escaping.
func serialize(v any) (string, bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

// displayOutput is the actualOutput shown to the candidate.
func displayOutput(v any) string {
	if s, ok := serialize(v); ok {
		return s
	}
	return coerceString(v)
}

// coerceString follows JavaScript String() for the exported value shapes.
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatNumber(t)
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			if item != nil {
				parts[i] = coerceString(item)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		if s, ok := serialize(t); ok {
			return s
		}
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f < 1e21 && f > -1e21 && f == math.Trunc(f):
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
