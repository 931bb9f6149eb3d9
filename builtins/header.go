package builtins

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)

// ParseHeader parses ava's source-file header convention (spec.md §6):
// the first '#'-prefixed line of the source, trimmed of its leading
// '#', parsed as a dict literal. Tried in order: strict JSON; the same
// text with single quotes rewritten to double quotes; that rewritten
// text with trailing commas stripped, re-parsed as JSON — mirroring
// original_source/ava_core/basic.py's execute_run header-parsing
// fallback chain. Returns (nil, nil) if the source has no header line.
func ParseHeader(source string) (map[string]interface{}, error) {
	raw, ok := firstHeaderLine(source)
	if !ok {
		return nil, nil
	}

	if m, err := parseStrictJSON(raw); err == nil {
		return m, nil
	}

	permissive := singleQuotedToJSON(raw)
	if m, err := parseStrictJSON(permissive); err == nil {
		return m, nil
	}

	normalized := trailingCommaPattern.ReplaceAllString(permissive, "$1")
	if m, err := parseStrictJSON(normalized); err == nil {
		return m, nil
	}

	return nil, fmt.Errorf("could not parse header line: %s", raw)
}

func firstHeaderLine(source string) (string, bool) {
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, "#")), true
		}
	}
	return "", false
}

func parseStrictJSON(raw string) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// singleQuotedToJSON converts a Python-dict-literal-style single-quoted
// header into JSON's double-quoted form. Best-effort: it tracks whether
// it is inside a double-quoted run so it never rewrites an apostrophe
// that already lives inside one, but does not handle backslash escapes.
func singleQuotedToJSON(raw string) string {
	var sb strings.Builder
	inDouble := false
	for _, r := range raw {
		switch r {
		case '"':
			inDouble = !inDouble
			sb.WriteRune(r)
		case '\'':
			if inDouble {
				sb.WriteRune(r)
			} else {
				sb.WriteRune('"')
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
