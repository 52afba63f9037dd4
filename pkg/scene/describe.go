package scene

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Describe writes a human-readable dump of the scene
func (s *Scene) Describe(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Max Ray Trace Depth: %d\n", s.MaxDepth)
	fmt.Fprintf(bw, "Background Color: %v\n", s.BackgroundColor)

	for i, c := range s.Cameras {
		fmt.Fprintf(bw, "Camera[%d]:\n", i)
		fmt.Fprintf(bw, "\tID: %d\n", c.ID)
		fmt.Fprintf(bw, "\tPosition: %v\n", c.Position)
		fmt.Fprintf(bw, "\tGaze: %v\n", c.Gaze)
		fmt.Fprintf(bw, "\tUp: %v\n", c.Up)
		fmt.Fprintf(bw, "\tLeft Right Bottom Top: %g %g %g %g\n", c.Left, c.Right, c.Bottom, c.Top)
		fmt.Fprintf(bw, "\tNear Distance: %g\n", c.NearDistance)
		fmt.Fprintf(bw, "\tH-res V-res: %d %d\n", c.HRes, c.VRes)
		fmt.Fprintf(bw, "\tImage Name: %s\n", c.ImageName)
	}

	fmt.Fprintf(bw, "Ambient Light: %v\n", s.AmbientLight)
	for i, l := range s.Lights {
		fmt.Fprintf(bw, "Light[%d]:\n", i)
		fmt.Fprintf(bw, "\tID: %d\n", l.ID)
		fmt.Fprintf(bw, "\tPosition: %v\n", l.Position)
		fmt.Fprintf(bw, "\tIntensity: %v\n", l.Intensity)
	}

	for i, m := range s.Materials {
		fmt.Fprintf(bw, "Material[%d]:\n", i)
		writeMaterial(bw, "\t", m)
	}

	fmt.Fprintf(bw, "Vertices: %d\n", len(s.Vertices))
	for i, v := range s.Vertices {
		// Numbered from 1 like the scene file's vertex references
		fmt.Fprintf(bw, "\tVertex[%d]: %v\n", i+1, v)
	}

	fmt.Fprintf(bw, "Objects: %d\n", len(s.Shapes))
	for _, shape := range s.Shapes {
		fmt.Fprintf(bw, "\tType: %v\n", shape.Kind())
		fmt.Fprintf(bw, "\tID: %d\n", shape.ID())

		switch sh := shape.(type) {
		case *geometry.Sphere:
			writeMaterial(bw, "\t\t", sh.Material)
			fmt.Fprintf(bw, "\tCenter: %v\n", sh.Center)
			fmt.Fprintf(bw, "\tRadius: %g\n", sh.Radius)
		case *geometry.Triangle:
			writeMaterial(bw, "\t\t", sh.Material)
			fmt.Fprintf(bw, "\tFace: %v %v %v\n", sh.V0, sh.V1, sh.V2)
		case *geometry.Mesh:
			writeMaterial(bw, "\t\t", sh.Material)
			fmt.Fprintf(bw, "\tFaces: %d\n", len(sh.Faces))
			for _, f := range sh.Faces {
				fmt.Fprintf(bw, "\t%v %v %v\n", f[0], f[1], f[2])
			}
		}
	}

	return bw.Flush()
}

func writeMaterial(w io.Writer, indent string, m material.Material) {
	fmt.Fprintf(w, "%sAmbient: %v\n", indent, m.Ambient)
	fmt.Fprintf(w, "%sDiffuse: %v\n", indent, m.Diffuse)
	fmt.Fprintf(w, "%sSpecular: %v\n", indent, m.Specular)
	fmt.Fprintf(w, "%sMirror: %v\n", indent, m.Mirror)
	fmt.Fprintf(w, "%sPhong: %g\n", indent, m.PhongExponent)
}
