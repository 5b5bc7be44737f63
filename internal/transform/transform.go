// Package transform holds the vector and matrix helpers shared by the camera,
// the light and the light-shafts composite.
package transform

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// HalfPi bounds the camera pitch.
const HalfPi float32 = math32.Pi / 2

// CameraRotation builds the camera orientation: pitch about world X, then yaw about world Y.
func CameraRotation(pitch, yaw float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(pitch).Mul4(mgl32.HomogRotate3DY(yaw))
}

// TransformVector multiplies v as a row vector: (vec4(v, 1) * m).xyz.
func TransformVector(v mgl32.Vec3, m mgl32.Mat4) mgl32.Vec3 {
	return m.Transpose().Mul4x1(v.Vec4(1)).Vec3()
}

// ClampPitch keeps an angle inside [-pi/2, pi/2].
func ClampPitch(a float32) float32 {
	return mgl32.Clamp(a, -HalfPi, HalfPi)
}

// Perspective takes the vertical field of view in radians.
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(fovY, aspect, near, far)
}

func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// ProjectToScreen maps a world point to screen fractions, (0,0) bottom-left and (1,1) top-right.
func ProjectToScreen(viewProj mgl32.Mat4, p mgl32.Vec3) mgl32.Vec2 {
	clip := viewProj.Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{(ndc.X() + 1) * 0.5, (ndc.Y() + 1) * 0.5}
}

func Translation(p mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(p.X(), p.Y(), p.Z())
}

// RelativeTo expresses a world point in the frame of a translated object.
func RelativeTo(p, origin mgl32.Vec3) mgl32.Vec3 {
	return Translation(origin).Inv().Mul4x1(p.Vec4(1)).Vec3()
}

// Radians converts degrees the way config files specify angles.
func Radians(deg float32) float32 {
	return deg * math32.Pi / 180
}
