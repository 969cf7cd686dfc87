package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	got := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("TransformPoint with scale: got %v, want %v", got, want)
	}
}

func TestTransformDirection(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{0, 0, -1})

	// Directions ignore translation
	want := Vec3{0, 0, -1}
	if got != want {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(math32.Pi / 2) // 90 degrees
	got := m.TransformPoint(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", got)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(math32.Pi / 2)
	got := m.TransformPoint(Vec3{0, 1, 0})

	// (0,1,0) rotates to (0,0,1)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z-1) > 0.001 {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", got)
	}
}

func TestRadians(t *testing.T) {
	if got := Radians(180); abs(got-math32.Pi) > 0.0001 {
		t.Errorf("Radians(180) = %f, want pi", got)
	}
	if got := Degrees(math32.Pi / 2); abs(got-90) > 0.001 {
		t.Errorf("Degrees(pi/2) = %f, want 90", got)
	}
}

func TestPerspective(t *testing.T) {
	fov := Radians(45)
	aspect := float32(1.0)
	near := float32(0.1)
	far := float32(100.0)

	m := Perspective(fov, aspect, near, far)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	// The center should land on the negative Z axis at the eye distance
	got := m.TransformPoint(center)
	if abs(got.X) > 0.001 || abs(got.Y) > 0.001 || abs(got.Z+5) > 0.001 {
		t.Errorf("LookAt center: got %v, want (0, 0, -5)", got)
	}
	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
}

func TestLookAtDegenerateUp(t *testing.T) {
	// Eye straight above the target with the default Y up would zero the
	// side axis. The matrix must stay finite.
	eye := Vec3{0, 5, 0}
	center := Vec3{}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)
	for i, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			t.Fatalf("LookAt element %d not finite: %f", i, v)
		}
	}

	got := m.TransformPoint(center)
	if abs(got.Z+5) > 0.001 {
		t.Errorf("LookAt degenerate center depth: got %f, want -5", got.Z)
	}
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()

	if tr[3] != 1 || tr[7] != 2 || tr[11] != 3 {
		t.Errorf("Transpose moved translation to (%f, %f, %f), want (1, 2, 3)", tr[3], tr[7], tr[11])
	}
	if tr.Transpose() != m {
		t.Error("Transpose twice should restore the matrix")
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, 2, 3).Mul(RotateY(0.5)).Mul(Scale(2, 3, 4))
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Identity()
	for i := 0; i < 16; i++ {
		if abs(id[i]-want[i]) > 0.0001 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scale(0, 0, 0)
	if m.Inverse() != Identity() {
		t.Error("Inverse of singular matrix should be identity")
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
