package transform_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"lightshafts/internal/transform"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], eps, "component %d of %v", i, got)
	}
}

func TestTransformVectorYaw(t *testing.T) {
	r := transform.CameraRotation(0, mgl32.DegToRad(90))
	assertVec3(t, mgl32.Vec3{1, 0, 0}, transform.TransformVector(mgl32.Vec3{0, 0, -1}, r))
	assertVec3(t, mgl32.Vec3{0, 1, 0}, transform.TransformVector(mgl32.Vec3{0, 1, 0}, r))
}

func TestTransformVectorPitchLooksDown(t *testing.T) {
	r := transform.CameraRotation(mgl32.DegToRad(90), 0)
	assertVec3(t, mgl32.Vec3{0, -1, 0}, transform.TransformVector(mgl32.Vec3{0, 0, -1}, r))
}

func TestCameraRotationOrder(t *testing.T) {
	pitch, yaw := float32(0.3), float32(1.1)
	want := mgl32.HomogRotate3DX(pitch).Mul4(mgl32.HomogRotate3DY(yaw))
	got := transform.CameraRotation(pitch, yaw)
	assert.True(t, want.ApproxEqual(got))
	assert.False(t, mgl32.HomogRotate3DY(yaw).Mul4(mgl32.HomogRotate3DX(pitch)).ApproxEqual(got))
}

func TestClampPitch(t *testing.T) {
	assert.Equal(t, transform.HalfPi, transform.ClampPitch(10))
	assert.Equal(t, -transform.HalfPi, transform.ClampPitch(-10))
	assert.Equal(t, float32(0.25), transform.ClampPitch(0.25))
}

func TestProjectToScreenCenter(t *testing.T) {
	proj := transform.Perspective(transform.Radians(90), 4.0/3.0, 1, 64)
	view := transform.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	for _, depth := range []float32{1.5, 10, 63} {
		p := transform.ProjectToScreen(proj.Mul4(view), mgl32.Vec3{0, 0, -depth})
		assert.InDelta(t, 0.5, p.X(), eps)
		assert.InDelta(t, 0.5, p.Y(), eps)
	}
}

func TestProjectToScreenOffAxis(t *testing.T) {
	proj := transform.Perspective(transform.Radians(90), 1, 1, 64)
	view := transform.LookAt(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	// 45 degrees right of centre sits on the frustum edge.
	p := transform.ProjectToScreen(proj.Mul4(view), mgl32.Vec3{5, 0, -5})
	assert.InDelta(t, 1.0, p.X(), eps)
	assert.InDelta(t, 0.5, p.Y(), eps)
}

func TestRelativeTo(t *testing.T) {
	assertVec3(t, mgl32.Vec3{1, -2, 3}, transform.RelativeTo(mgl32.Vec3{2, 0, 3}, mgl32.Vec3{1, 2, 0}))
}
