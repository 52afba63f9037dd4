package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Material holds the Blinn-Phong style reflectance coefficients of a surface.
// Reflectances are colors in [0,1]; the Phong exponent is non-negative.
type Material struct {
	ID            int
	Ambient       core.Color
	Diffuse       core.Color
	Specular      core.Color
	Mirror        core.Color
	PhongExponent float64
}

// NewDiffuse creates a material that only has ambient and diffuse reflectance
func NewDiffuse(ambient, diffuse core.Color) Material {
	return Material{Ambient: ambient, Diffuse: diffuse}
}

// NewMirror creates a perfect mirror with a small ambient term
func NewMirror(ambient, mirror core.Color) Material {
	return Material{Ambient: ambient, Mirror: mirror}
}

// IsMirror returns true if any mirror reflectance component is positive
func (m Material) IsMirror() bool {
	return m.Mirror.X > 0 || m.Mirror.Y > 0 || m.Mirror.Z > 0
}
