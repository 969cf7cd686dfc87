package usda

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

// Encode writes a stage as usda text. The output stays within the subset
// Decode reads, so saved stages round-trip.
func Encode(w io.Writer, st *stage.Stage) error {
	var b strings.Builder
	b.WriteString("#usda 1.0\n")
	writeLayerMetadata(&b, st)
	for _, p := range st.Root().Children() {
		b.WriteByte('\n')
		writePrim(&b, p, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLayerMetadata(b *strings.Builder, st *stage.Stage) {
	b.WriteString("(\n")
	if name := st.DefaultPrim(); name != "" {
		fmt.Fprintf(b, "    defaultPrim = %q\n", name)
	}
	if st.HasAnimation() {
		fmt.Fprintf(b, "    endTimeCode = %s\n", ftoa(st.EndTime()))
		fmt.Fprintf(b, "    startTimeCode = %s\n", ftoa(st.StartTime()))
		fmt.Fprintf(b, "    timeCodesPerSecond = %s\n", ftoa(st.TimeCodesPerSecond()))
	}
	b.WriteString("    upAxis = \"Y\"\n")
	b.WriteString(")\n")
}

func writePrim(b *strings.Builder, p *stage.Prim, depth int) {
	ind := strings.Repeat("    ", depth)
	if tn := p.TypeName(); tn != "" {
		fmt.Fprintf(b, "%sdef %s %q\n", ind, tn, p.Name())
	} else {
		fmt.Fprintf(b, "%sdef %q\n", ind, p.Name())
	}
	b.WriteString(ind + "{\n")

	wrote := writeAttrs(b, p, depth+1)
	for _, c := range p.Children() {
		if wrote {
			b.WriteByte('\n')
		}
		writePrim(b, c, depth+1)
		wrote = true
	}

	b.WriteString(ind + "}\n")
}

func writeAttrs(b *strings.Builder, p *stage.Prim, depth int) bool {
	ind := strings.Repeat("    ", depth)
	start := b.Len()

	if counts := p.FaceCounts(); len(counts) > 0 {
		fmt.Fprintf(b, "%sint[] faceVertexCounts = %s\n", ind, formatIntList(counts))
	}
	if idx := p.FaceIndices(); len(idx) > 0 {
		fmt.Fprintf(b, "%sint[] faceVertexIndices = %s\n", ind, formatIntList(idx))
	}
	writeScalarIfSet(b, ind, "double", "height", p.HeightAttr())
	writeScalarIfSet(b, ind, "float", "inputs:intensity", p.IntensityAttr())
	if pts := p.Points(); len(pts) > 0 {
		fmt.Fprintf(b, "%spoint3f[] points = %s\n", ind, formatVec3List(pts))
	}
	if c, ok := p.DisplayColor(); ok {
		fmt.Fprintf(b, "%scolor3f[] primvars:displayColor = [%s]\n", ind, formatVec3(c))
	}
	writeScalarIfSet(b, ind, "double", "radius", p.RadiusAttr())
	writeScalarIfSet(b, ind, "double", "size", p.SizeAttr())

	if ops := p.XformOps(); len(ops) > 0 {
		names := opNames(ops)
		for i, op := range ops {
			writeOp(b, ind, names[i], op)
		}
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = strconv.Quote(n)
		}
		fmt.Fprintf(b, "%suniform token[] xformOpOrder = [%s]\n", ind, strings.Join(quoted, ", "))
	}

	return b.Len() > start
}

// opNames returns the attribute name of each operator, suffixed with an
// ordinal when a kind repeats so names stay unique.
func opNames(ops []stage.XformOp) []string {
	total := make(map[stage.OpKind]int)
	for _, op := range ops {
		total[op.Kind]++
	}
	seen := make(map[stage.OpKind]int)
	names := make([]string, len(ops))
	for i, op := range ops {
		name := "xformOp:" + op.Kind.String()
		if total[op.Kind] > 1 {
			seen[op.Kind]++
			name = fmt.Sprintf("%s:op%d", name, seen[op.Kind])
		}
		names[i] = name
	}
	return names
}

func writeOp(b *strings.Builder, ind, name string, op stage.XformOp) {
	switch op.Kind {
	case stage.OpTranslate:
		writeVec(b, ind, "double3", name, op.Vec)
	case stage.OpRotateXYZ, stage.OpScale:
		writeVec(b, ind, "float3", name, op.Vec)
	default:
		writeScalar(b, ind, "float", name, op.Angle)
	}
}

func writeScalarIfSet(b *strings.Builder, ind, typ, name string, a stage.FloatAttr) {
	if a.Authored() {
		writeScalar(b, ind, typ, name, a)
	}
}

func writeScalar(b *strings.Builder, ind, typ, name string, a stage.FloatAttr) {
	if samples := a.Samples(); len(samples) > 0 {
		fmt.Fprintf(b, "%s%s %s.timeSamples = {\n", ind, typ, name)
		for _, s := range samples {
			fmt.Fprintf(b, "%s    %s: %s,\n", ind, ftoa(s.Time), ftoa(s.Value))
		}
		fmt.Fprintf(b, "%s}\n", ind)
		return
	}
	fmt.Fprintf(b, "%s%s %s = %s\n", ind, typ, name, ftoa(a.Eval(0)))
}

func writeVec(b *strings.Builder, ind, typ, name string, a stage.Vec3Attr) {
	if samples := a.Samples(); len(samples) > 0 {
		fmt.Fprintf(b, "%s%s %s.timeSamples = {\n", ind, typ, name)
		for _, s := range samples {
			fmt.Fprintf(b, "%s    %s: %s,\n", ind, ftoa(s.Time), formatVec3(s.Value))
		}
		fmt.Fprintf(b, "%s}\n", ind)
		return
	}
	fmt.Fprintf(b, "%s%s %s = %s\n", ind, typ, name, formatVec3(a.Eval(0)))
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func f32toa(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func formatVec3(v math.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", f32toa(v.X), f32toa(v.Y), f32toa(v.Z))
}

func formatVec3List(vs []math.Vec3) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatVec3(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatIntList(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
