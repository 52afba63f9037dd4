package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera with an explicit near plane window
type Camera struct {
	ID           int
	Position     core.Point
	Gaze         core.Vec3
	Up           core.Vec3
	Left, Right  float64 // Near plane horizontal extents
	Bottom, Top  float64 // Near plane vertical extents
	NearDistance float64
	HRes, VRes   int    // Image resolution in pixels
	ImageName    string // Output image identifier
}

// Basis returns the orthonormal image basis: u points right, v points up
// and w along the gaze
func (c Camera) Basis() (u, v, w core.Vec3) {
	w = c.Gaze.Normalize()
	u = w.Cross(c.Up).Normalize()
	v = u.Cross(w).Normalize()
	return u, v, w
}

// PlaneSize returns the physical width and height of the image plane.
// The height is divided by the pixel aspect ratio.
func (c Camera) PlaneSize() (width, height float64) {
	aspectRatio := float64(c.HRes) / float64(c.VRes)
	return c.Right - c.Left, (c.Top - c.Bottom) / aspectRatio
}

// PixelCount returns the number of pixels in the image
func (c Camera) PixelCount() int {
	return c.HRes * c.VRes
}

// ViewPlane caches the per-camera quantities needed to generate primary rays
type ViewPlane struct {
	camera        Camera
	u, v, w       core.Vec3
	width, height float64
	nearCenter    core.Point
}

// NewViewPlane derives the image basis and plane size for a camera
func NewViewPlane(c Camera) *ViewPlane {
	u, v, w := c.Basis()
	width, height := c.PlaneSize()
	return &ViewPlane{
		camera:     c,
		u:          u,
		v:          v,
		w:          w,
		width:      width,
		height:     height,
		nearCenter: c.Position.Add(w.Multiply(c.NearDistance)),
	}
}

// GetRay generates the primary ray for pixel (i, j), where j counts rows from
// the top of the image. dx and dy in [0,1) offset the sample inside the pixel.
func (vp *ViewPlane) GetRay(i, j int, dx, dy float64) core.Ray {
	c := vp.camera
	row := c.VRes - 1 - j

	uOffset := (float64(i) + dx) * vp.width / float64(c.HRes)
	vOffset := (float64(row) + dy) * vp.height / float64(c.VRes)

	pixel := vp.nearCenter.
		Add(vp.u.Multiply(c.Left + uOffset)).
		Add(vp.v.Multiply(c.Bottom + vOffset))

	return core.NewRay(c.Position, pixel.Subtract(c.Position))
}
