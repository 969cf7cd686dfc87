package usda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// stripComment cuts an unquoted # and everything after it.
func stripComment(s string) string {
	inString := false
	for i, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '#':
			if !inString {
				return s[:i]
			}
		}
	}
	return s
}

// nestDelta counts bracket nesting opened minus closed, outside strings.
func nestDelta(s string) int {
	depth := 0
	inString := false
	for _, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '(', '[', '{':
			if !inString {
				depth++
			}
		case ')', ']', '}':
			if !inString {
				depth--
			}
		}
	}
	return depth
}

// parenDelta counts parens opened minus closed, outside strings.
func parenDelta(s string) int {
	depth := 0
	inString := false
	for _, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '(':
			if !inString {
				depth++
			}
		case ')':
			if !inString {
				depth--
			}
		}
	}
	return depth
}

// splitQuoted splits on whitespace, keeping quoted strings whole.
func splitQuoted(s string) []string {
	var out []string
	var cur strings.Builder
	inString := false
	for _, r := range s {
		switch {
		case r == '"':
			inString = !inString
			cur.WriteRune(r)
		case !inString && (r == ' ' || r == '\t'):
			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}

// splitTop splits on commas outside any bracket nesting. Empty pieces
// (trailing commas) are dropped.
func splitTop(s string) []string {
	var out []string
	depth := 0
	inString := false
	start := 0
	appendPiece := func(end int) {
		if piece := strings.TrimSpace(s[start:end]); piece != "" {
			out = append(out, piece)
		}
	}
	for i, r := range s {
		switch r {
		case '"':
			inString = !inString
		case '(', '[', '{':
			if !inString {
				depth++
			}
		case ')', ']', '}':
			if !inString {
				depth--
			}
		case ',':
			if !inString && depth == 0 {
				appendPiece(i)
				start = i + 1
			}
		}
	}
	appendPiece(len(s))
	return out
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func stripOuter(s string, open, close byte) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != open || s[len(s)-1] != close {
		return "", fmt.Errorf("expected %c...%c, got %q", open, close, s)
	}
	return s[1 : len(s)-1], nil
}

// parseVec3 parses a "(x, y, z)" tuple.
func parseVec3(s string) (math.Vec3, error) {
	inner, err := stripOuter(s, '(', ')')
	if err != nil {
		return math.Vec3{}, err
	}
	parts := splitTop(inner)
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components in %q", s)
	}
	var v [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = float32(f)
	}
	return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
}

// parseVec3List parses a "[(x, y, z), ...]" tuple list.
func parseVec3List(s string) ([]math.Vec3, error) {
	inner, err := stripOuter(s, '[', ']')
	if err != nil {
		return nil, err
	}
	parts := splitTop(inner)
	out := make([]math.Vec3, 0, len(parts))
	for _, p := range parts {
		v, err := parseVec3(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parseIntList parses a "[1, 2, 3]" integer list.
func parseIntList(s string) ([]int, error) {
	inner, err := stripOuter(s, '[', ']')
	if err != nil {
		return nil, err
	}
	parts := splitTop(inner)
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("integer %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseTokenList parses a `["a", "b"]` quoted token list.
func parseTokenList(s string) ([]string, error) {
	inner, err := stripOuter(s, '[', ']')
	if err != nil {
		return nil, err
	}
	parts := splitTop(inner)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, unquote(p))
	}
	return out, nil
}

// parseFloatSamples parses a "{ t: v, ... }" scalar sample dict.
func parseFloatSamples(s string) ([]stage.FloatSample, error) {
	inner, err := stripOuter(s, '{', '}')
	if err != nil {
		return nil, err
	}
	entries := splitTop(inner)
	out := make([]stage.FloatSample, 0, len(entries))
	for _, entry := range entries {
		ts, vs, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("bad time sample %q", entry)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
		if err != nil {
			return nil, fmt.Errorf("time sample %q: %w", entry, err)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(vs), 64)
		if err != nil {
			return nil, fmt.Errorf("time sample %q: %w", entry, err)
		}
		out = append(out, stage.FloatSample{Time: t, Value: v})
	}
	return out, nil
}

// parseVec3Samples parses a "{ t: (x, y, z), ... }" vector sample dict.
func parseVec3Samples(s string) ([]stage.Vec3Sample, error) {
	inner, err := stripOuter(s, '{', '}')
	if err != nil {
		return nil, err
	}
	entries := splitTop(inner)
	out := make([]stage.Vec3Sample, 0, len(entries))
	for _, entry := range entries {
		ts, vs, found := strings.Cut(entry, ":")
		if !found {
			return nil, fmt.Errorf("bad time sample %q", entry)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
		if err != nil {
			return nil, fmt.Errorf("time sample %q: %w", entry, err)
		}
		v, err := parseVec3(strings.TrimSpace(vs))
		if err != nil {
			return nil, fmt.Errorf("time sample %q: %w", entry, err)
		}
		out = append(out, stage.Vec3Sample{Time: t, Value: v})
	}
	return out, nil
}
