package usda

import (
	"errors"
	"strings"
	"testing"

	"github.com/veldrane/stageview/pkg/math"
	"github.com/veldrane/stageview/pkg/stage"
)

const simpleScene = `#usda 1.0
(
    defaultPrim = "World"
    upAxis = "Y"
)

def Xform "World"
{
    def Cube "Box"
    {
        color3f[] primvars:displayColor = [(0.2, 0.4, 0.8)]
        double size = 2
        double3 xformOp:translate = (-3, 1, 0)
        uniform token[] xformOpOrder = ["xformOp:translate"]
    }

    def DistantLight "Sun"
    {
        float inputs:intensity = 1.5
        float3 xformOp:rotateXYZ = (-45, 30, 0)
        uniform token[] xformOpOrder = ["xformOp:rotateXYZ"]
    }
}
`

func TestDecodeSimpleScene(t *testing.T) {
	st, err := Decode(strings.NewReader(simpleScene), "simple")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if st.DefaultPrim() != "World" {
		t.Errorf("defaultPrim = %q, want World", st.DefaultPrim())
	}

	box := st.PrimAtPath("/World/Box")
	if box == nil {
		t.Fatal("missing /World/Box")
	}
	if box.Kind() != stage.KindCube {
		t.Errorf("kind = %v, want Cube", box.Kind())
	}
	if v, ok := box.Size(0); !ok || v != 2 {
		t.Errorf("size = %v (%v), want 2", v, ok)
	}
	if c, ok := box.DisplayColor(); !ok || c != (math.Vec3{0.2, 0.4, 0.8}) {
		t.Errorf("color = %v (%v)", c, ok)
	}

	ops := box.XformOps()
	if len(ops) != 1 || ops[0].Kind != stage.OpTranslate {
		t.Fatalf("ops = %v, want one translate", ops)
	}
	if v := ops[0].Vec.Eval(0); v != (math.Vec3{-3, 1, 0}) {
		t.Errorf("translate = %v, want (-3, 1, 0)", v)
	}

	sun := st.PrimAtPath("/World/Sun")
	if sun == nil || sun.Kind() != stage.KindLight {
		t.Fatal("missing /World/Sun light")
	}
	if v, ok := sun.Intensity(0); !ok || v != 1.5 {
		t.Errorf("intensity = %v (%v), want 1.5", v, ok)
	}
	if len(sun.XformOps()) != 1 || sun.XformOps()[0].Kind != stage.OpRotateXYZ {
		t.Error("sun should carry one rotateXYZ op")
	}
}

func TestDecodeMesh(t *testing.T) {
	doc := `#usda 1.0

def Mesh "Ground"
{
    int[] faceVertexCounts = [4]
    int[] faceVertexIndices = [0, 1, 2, 3]
    point3f[] points = [(-10, 0, -10), (10, 0, -10),
        (10, 0, 10), (-10, 0, 10)]
    color3f[] primvars:displayColor = [(0.4, 0.4, 0.45)]
}
`
	st, err := Decode(strings.NewReader(doc), "mesh")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	m := st.PrimAtPath("/Ground")
	if m == nil || m.Kind() != stage.KindMesh {
		t.Fatal("missing /Ground mesh")
	}
	if len(m.Points()) != 4 {
		t.Errorf("points = %d, want 4", len(m.Points()))
	}
	if m.Points()[2] != (math.Vec3{10, 0, 10}) {
		t.Errorf("points[2] = %v, want (10, 0, 10)", m.Points()[2])
	}
	if len(m.FaceCounts()) != 1 || m.FaceCounts()[0] != 4 {
		t.Errorf("faceCounts = %v, want [4]", m.FaceCounts())
	}
	if len(m.FaceIndices()) != 4 || m.FaceIndices()[3] != 3 {
		t.Errorf("faceIndices = %v, want [0 1 2 3]", m.FaceIndices())
	}
}

func TestDecodeTimeSamples(t *testing.T) {
	doc := `#usda 1.0
(
    defaultPrim = "World"
    endTimeCode = 120
    startTimeCode = 1
    timeCodesPerSecond = 24
    upAxis = "Y"
)

def Xform "World"
{
    def Cube "Spinner"
    {
        double size = 1.5
        float xformOp:rotateY.timeSamples = {
            1: 3,
            120: 360,
        }
        double3 xformOp:translate = (-3, 1, 0)
        uniform token[] xformOpOrder = ["xformOp:rotateY", "xformOp:translate"]
    }
}
`
	st, err := Decode(strings.NewReader(doc), "anim")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !st.HasAnimation() || st.StartTime() != 1 || st.EndTime() != 120 {
		t.Errorf("time range = %v..%v, want 1..120", st.StartTime(), st.EndTime())
	}
	if st.TimeCodesPerSecond() != 24 {
		t.Errorf("tcps = %v, want 24", st.TimeCodesPerSecond())
	}

	ops := st.PrimAtPath("/World/Spinner").XformOps()
	if len(ops) != 2 {
		t.Fatalf("ops = %d, want 2", len(ops))
	}
	if ops[0].Kind != stage.OpRotateY || ops[1].Kind != stage.OpTranslate {
		t.Fatal("ops out of xformOpOrder")
	}
	if got := ops[0].Angle.Eval(1); got != 3 {
		t.Errorf("rotateY(1) = %v, want 3", got)
	}
	if got := ops[0].Angle.Eval(60.5); got != 181.5 {
		t.Errorf("rotateY(60.5) = %v, want 181.5", got)
	}
}

func TestDecodeSampledTranslate(t *testing.T) {
	doc := `#usda 1.0

def Sphere "Bouncer"
{
    double radius = 0.8
    double3 xformOp:translate.timeSamples = {
        0: (0, 0, 0),
        10: (0, 4, 0),
    }
    uniform token[] xformOpOrder = ["xformOp:translate"]
}
`
	st, err := Decode(strings.NewReader(doc), "bounce")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ops := st.PrimAtPath("/Bouncer").XformOps()
	if len(ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(ops))
	}
	if v := ops[0].Vec.Eval(5); v != (math.Vec3{0, 2, 0}) {
		t.Errorf("translate(5) = %v, want (0, 2, 0)", v)
	}
}

func TestDecodeOpOrderFilters(t *testing.T) {
	doc := `#usda 1.0

def Cube "Box"
{
    float3 xformOp:scale = (2, 2, 2)
    double3 xformOp:translate = (1, 0, 0)
    uniform token[] xformOpOrder = ["xformOp:translate"]
}
`
	st, err := Decode(strings.NewReader(doc), "t")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ops := st.PrimAtPath("/Box").XformOps()
	if len(ops) != 1 || ops[0].Kind != stage.OpTranslate {
		t.Errorf("ops = %v, want unlisted scale dropped", ops)
	}
}

func TestDecodeOpsWithoutOrder(t *testing.T) {
	doc := `#usda 1.0

def Cube "Box"
{
    double3 xformOp:translate = (1, 0, 0)
}
`
	st, err := Decode(strings.NewReader(doc), "t")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ops := st.PrimAtPath("/Box").XformOps(); len(ops) != 0 {
		t.Errorf("ops = %v, want none without xformOpOrder", ops)
	}
}

func TestDecodeSkipsUnknown(t *testing.T) {
	doc := `#usda 1.0

def Scope "Stuff" (
    kind = "group"
)
{
    def Cube "Box"
    {
        float3[] extent = [(-1, -1, -1), (1, 1, 1)]
        uniform token purpose = "default"
        token visibility = "inherited"
        bool doubleSided = true
        rel material:binding = </Stuff/Mtl>
        double size = 2
    }
}
`
	st, err := Decode(strings.NewReader(doc), "t")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	scope := st.PrimAtPath("/Stuff")
	if scope == nil || scope.Kind() != stage.KindOther {
		t.Fatal("Scope prim should parse as Other")
	}
	box := st.PrimAtPath("/Stuff/Box")
	if box == nil {
		t.Fatal("child of unknown prim type lost")
	}
	if v, ok := box.Size(0); !ok || v != 2 {
		t.Errorf("size = %v (%v), want 2", v, ok)
	}
}

func TestDecodeComments(t *testing.T) {
	doc := `#usda 1.0
# a full-line comment

def Cube "Box"
{
    double size = 2 # trailing comment
}
`
	st, err := Decode(strings.NewReader(doc), "t")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v, ok := st.PrimAtPath("/Box").Size(0); !ok || v != 2 {
		t.Errorf("size = %v (%v), want 2", v, ok)
	}
}

func TestDecodeMissingHeader(t *testing.T) {
	_, err := Decode(strings.NewReader("def Cube \"Box\"\n{\n}\n"), "t")
	if !errors.Is(err, ErrBadHeader) {
		t.Errorf("err = %v, want ErrBadHeader", err)
	}
}

func TestDecodeUnclosedBlock(t *testing.T) {
	doc := "#usda 1.0\n\ndef Cube \"Box\"\n{\n    double size = 2\n"
	_, err := Decode(strings.NewReader(doc), "t")
	if !errors.Is(err, ErrUnclosedBlock) {
		t.Errorf("err = %v, want ErrUnclosedBlock", err)
	}
}

func TestDecodeStrayBrace(t *testing.T) {
	doc := "#usda 1.0\n\n}\n"
	_, err := Decode(strings.NewReader(doc), "t")
	if !errors.Is(err, ErrUnbalanced) {
		t.Errorf("err = %v, want ErrUnbalanced", err)
	}
}

func TestDecodeBadUpAxis(t *testing.T) {
	doc := "#usda 1.0\n(\n    upAxis = \"Z\"\n)\n"
	_, err := Decode(strings.NewReader(doc), "t")
	if !errors.Is(err, ErrBadUpAxis) {
		t.Errorf("err = %v, want ErrBadUpAxis", err)
	}
}

func TestDecodeErrorCarriesLine(t *testing.T) {
	doc := `#usda 1.0

def Sphere "S"
{
    double radius = nope
}
`
	_, err := Decode(strings.NewReader(doc), "t")
	if err == nil {
		t.Fatal("want error for bad radius value")
	}
	if !strings.Contains(err.Error(), "line 5") {
		t.Errorf("err = %v, want line 5 mentioned", err)
	}
}
