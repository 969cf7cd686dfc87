package usda

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/veldrane/stageview/pkg/stage"
)

// Decode parses a usda document into a stage with the given name.
func Decode(r io.Reader, name string) (*stage.Stage, error) {
	d := &decoder{
		scan: bufio.NewScanner(r),
		st:   stage.New(name),
	}
	// Point arrays are written on a single line and can get long.
	d.scan.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if err := d.run(); err != nil {
		return nil, err
	}
	return d.st, nil
}

type decoder struct {
	scan *bufio.Scanner
	st   *stage.Stage
	line int

	stack []*primState // open def blocks, innermost last
	path  []string

	startTC, endTC   float64
	hasStart, hasEnd bool
}

// primState accumulates what only resolves when a prim block closes:
// transform operators keyed by full attribute name, and xformOpOrder.
type primState struct {
	prim     *stage.Prim
	ops      map[string]stage.XformOp
	order    []string
	hasOrder bool
}

func (d *decoder) next() (string, bool) {
	if !d.scan.Scan() {
		return "", false
	}
	d.line++
	return d.scan.Text(), true
}

func (d *decoder) top() *primState { return d.stack[len(d.stack)-1] }

func (d *decoder) run() error {
	first, ok := d.next()
	if !ok || !strings.HasPrefix(strings.TrimSpace(first), "#usda") {
		return fmt.Errorf("line 1: %w", ErrBadHeader)
	}

	layerDone := false
	for {
		raw, ok := d.next()
		if !ok {
			break
		}
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		switch {
		case !layerDone && len(d.stack) == 0 && strings.HasPrefix(line, "("):
			layerDone = true
			if err := d.layerMetadata(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, "def ") || strings.HasPrefix(line, "over ") || strings.HasPrefix(line, "class "):
			layerDone = true
			if err := d.def(line); err != nil {
				return err
			}
		case line == "}":
			if len(d.stack) == 0 {
				return fmt.Errorf("line %d: %w", d.line, ErrUnbalanced)
			}
			d.closePrim()
		default:
			layerDone = true
			if err := d.attribute(line); err != nil {
				return err
			}
		}
	}
	if err := d.scan.Err(); err != nil {
		return fmt.Errorf("line %d: %w", d.line, err)
	}
	if len(d.stack) > 0 {
		return fmt.Errorf("line %d: %w (%s)", d.line, ErrUnclosedBlock, d.top().prim.Path())
	}
	return nil
}

// layerMetadata reads the parenthesized block after the header. Unknown
// entries are ignored; metersPerUnit is parsed and dropped.
func (d *decoder) layerMetadata(first string) error {
	depth := parenDelta(first)
	if depth == 0 {
		inner := strings.TrimSpace(first)
		inner = strings.TrimPrefix(inner, "(")
		inner = strings.TrimSuffix(inner, ")")
		if err := d.layerEntry(strings.TrimSpace(inner)); err != nil {
			return err
		}
	}
	for depth > 0 {
		raw, ok := d.next()
		if !ok {
			return fmt.Errorf("line %d: %w (layer metadata)", d.line, ErrUnclosedBlock)
		}
		s := strings.TrimSpace(stripComment(raw))
		delta := parenDelta(s)
		if depth+delta <= 0 {
			s = strings.TrimSpace(strings.TrimSuffix(s, ")"))
		}
		depth += delta
		if s != "" {
			if err := d.layerEntry(s); err != nil {
				return err
			}
		}
	}
	if d.hasStart || d.hasEnd {
		d.st.SetTimeRange(d.startTC, d.endTC)
	}
	return nil
}

func (d *decoder) layerEntry(s string) error {
	key, val, found := strings.Cut(s, "=")
	if !found {
		return nil
	}
	key, val = strings.TrimSpace(key), strings.TrimSpace(val)
	switch key {
	case "defaultPrim":
		d.st.SetDefaultPrim(unquote(val))
	case "upAxis":
		if v := unquote(val); v != "Y" {
			return fmt.Errorf("line %d: %w: got %q", d.line, ErrBadUpAxis, v)
		}
	case "startTimeCode":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("line %d: startTimeCode: %w", d.line, err)
		}
		d.startTC, d.hasStart = v, true
	case "endTimeCode":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("line %d: endTimeCode: %w", d.line, err)
		}
		d.endTC, d.hasEnd = v, true
	case "timeCodesPerSecond", "framesPerSecond":
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", d.line, key, err)
		}
		d.st.SetTimeCodesPerSecond(v)
	}
	return nil
}

// def opens a prim block: `def TypeName "Name"`, optionally followed by
// parenthesized prim metadata (skipped) and the opening brace.
func (d *decoder) def(line string) error {
	f := splitQuoted(line)
	rest := f[1:]

	var typeName string
	if len(rest) > 0 && !strings.HasPrefix(rest[0], `"`) {
		typeName = rest[0]
		rest = rest[1:]
	}
	if len(rest) == 0 || !strings.HasPrefix(rest[0], `"`) {
		return fmt.Errorf("line %d: def missing prim name: %q", d.line, line)
	}
	name := unquote(rest[0])
	rem := strings.TrimSpace(strings.Join(rest[1:], " "))

	if strings.HasPrefix(rem, "(") {
		var err error
		rem, err = d.skipParens(rem)
		if err != nil {
			return err
		}
	}
	for rem == "" {
		raw, ok := d.next()
		if !ok {
			return fmt.Errorf("line %d: %w (expected '{' after def %q)", d.line, ErrUnclosedBlock, name)
		}
		rem = strings.TrimSpace(stripComment(raw))
	}
	if rem != "{" {
		return fmt.Errorf("line %d: expected '{' after def %q, got %q", d.line, name, rem)
	}

	d.path = append(d.path, name)
	prim := d.st.Define("/"+strings.Join(d.path, "/"), typeName)
	d.stack = append(d.stack, &primState{
		prim: prim,
		ops:  make(map[string]stage.XformOp),
	})
	return nil
}

// skipParens consumes a parenthesized block starting in s and returns the
// text following the closing paren.
func (d *decoder) skipParens(first string) (string, error) {
	s := first
	depth := 0
	for {
		inString := false
		for i, r := range s {
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
					if depth == 0 {
						return strings.TrimSpace(s[i+1:]), nil
					}
				}
			}
		}
		raw, ok := d.next()
		if !ok {
			return "", fmt.Errorf("line %d: %w (prim metadata)", d.line, ErrUnclosedBlock)
		}
		s = stripComment(raw)
	}
}

func (d *decoder) closePrim() {
	ps := d.top()
	d.stack = d.stack[:len(d.stack)-1]
	d.path = d.path[:len(d.path)-1]

	// Operators apply only when xformOpOrder lists them, in that order.
	if !ps.hasOrder {
		return
	}
	var ops []stage.XformOp
	for _, name := range ps.order {
		if op, ok := ps.ops[name]; ok {
			ops = append(ops, op)
		}
	}
	ps.prim.SetXformOps(ops)
}

// attribute parses one attribute statement, joining continuation lines
// until brackets balance.
func (d *decoder) attribute(first string) error {
	startLine := d.line
	stmt, err := d.statement(first)
	if err != nil {
		return err
	}
	if len(d.stack) == 0 {
		return fmt.Errorf("line %d: attribute outside a prim block: %q", startLine, first)
	}
	ps := d.top()

	left, val, found := strings.Cut(stmt, "=")
	if !found {
		return nil // bare declaration, nothing to store
	}
	left, val = strings.TrimSpace(left), strings.TrimSpace(val)

	f := strings.Fields(left)
	if len(f) < 2 {
		return fmt.Errorf("line %d: malformed attribute: %q", startLine, left)
	}
	name := f[len(f)-1] // fields before it are the type and qualifiers

	sampled := strings.HasSuffix(name, ".timeSamples")
	if sampled {
		name = strings.TrimSuffix(name, ".timeSamples")
	} else if strings.Contains(name, ".") {
		return nil // .connect and friends
	}

	switch {
	case name == "size":
		return d.scalarAttr(ps.prim.SetSize, startLine, name, sampled, val)
	case name == "radius":
		return d.scalarAttr(ps.prim.SetRadius, startLine, name, sampled, val)
	case name == "height":
		return d.scalarAttr(ps.prim.SetHeight, startLine, name, sampled, val)
	case name == "intensity" || name == "inputs:intensity":
		return d.scalarAttr(ps.prim.SetIntensity, startLine, name, sampled, val)
	case name == "points":
		pts, err := parseVec3List(val)
		if err != nil {
			return fmt.Errorf("line %d: points: %w", startLine, err)
		}
		ps.prim.SetPoints(pts)
	case name == "faceVertexIndices":
		idx, err := parseIntList(val)
		if err != nil {
			return fmt.Errorf("line %d: faceVertexIndices: %w", startLine, err)
		}
		ps.prim.SetFaceIndices(idx)
	case name == "faceVertexCounts":
		counts, err := parseIntList(val)
		if err != nil {
			return fmt.Errorf("line %d: faceVertexCounts: %w", startLine, err)
		}
		ps.prim.SetFaceCounts(counts)
	case name == "primvars:displayColor" || name == "displayColor":
		if sampled {
			return nil
		}
		colors, err := parseVec3List(val)
		if err != nil {
			return fmt.Errorf("line %d: displayColor: %w", startLine, err)
		}
		if len(colors) > 0 {
			ps.prim.SetDisplayColor(colors[0])
		}
	case name == "xformOpOrder":
		order, err := parseTokenList(val)
		if err != nil {
			return fmt.Errorf("line %d: xformOpOrder: %w", startLine, err)
		}
		ps.order, ps.hasOrder = order, true
	case strings.HasPrefix(name, "xformOp:"):
		return d.xformOpAttr(ps, name, sampled, val, startLine)
	}
	return nil // unknown attribute, consumed and ignored
}

// statement joins continuation lines until bracket nesting balances.
func (d *decoder) statement(first string) (string, error) {
	var b strings.Builder
	b.WriteString(first)
	depth := nestDelta(first)
	for depth > 0 {
		raw, ok := d.next()
		if !ok {
			return "", fmt.Errorf("line %d: %w (in attribute)", d.line, ErrUnclosedBlock)
		}
		s := strings.TrimSpace(stripComment(raw))
		b.WriteByte(' ')
		b.WriteString(s)
		depth += nestDelta(s)
	}
	if depth < 0 {
		return "", fmt.Errorf("line %d: %w", d.line, ErrUnbalanced)
	}
	return b.String(), nil
}

func (d *decoder) scalarAttr(set func(stage.FloatAttr), line int, name string, sampled bool, val string) error {
	if sampled {
		samples, err := parseFloatSamples(val)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", line, name, err)
		}
		set(stage.SampledFloat(samples))
		return nil
	}
	v, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fmt.Errorf("line %d: %s: %w", line, name, err)
	}
	set(stage.ConstFloat(v))
	return nil
}

// xformOpAttr folds one operator attribute into the prim state. An op can
// arrive as a default value, time samples, or both; samples win.
func (d *decoder) xformOpAttr(ps *primState, name string, sampled bool, val string, line int) error {
	suffix := strings.TrimPrefix(name, "xformOp:")
	base, _, _ := strings.Cut(suffix, ":")
	kind, ok := stage.ParseOpKind(base)
	if !ok {
		return nil // op form outside the subset
	}

	op, exists := ps.ops[name]
	if !exists {
		op = stage.XformOp{Kind: kind}
	}
	scalar := kind == stage.OpRotateX || kind == stage.OpRotateY || kind == stage.OpRotateZ

	switch {
	case sampled && scalar:
		samples, err := parseFloatSamples(val)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", line, name, err)
		}
		op.Angle = stage.SampledFloat(samples)
	case sampled:
		samples, err := parseVec3Samples(val)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", line, name, err)
		}
		op.Vec = stage.SampledVec3(samples)
	case scalar:
		if op.Angle.Samples() == nil {
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			op.Angle = stage.ConstFloat(v)
		}
	default:
		if op.Vec.Samples() == nil {
			v, err := parseVec3(val)
			if err != nil {
				return fmt.Errorf("line %d: %s: %w", line, name, err)
			}
			op.Vec = stage.ConstVec3(v)
		}
	}
	ps.ops[name] = op
	return nil
}
