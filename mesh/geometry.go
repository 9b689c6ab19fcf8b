package mesh

import (
	"math"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/notargets/laplace2d/types"
	"gonum.org/v1/gonum/spatial/r2"
)

// Geometry maps a reference element onto a mesh entity
type Geometry interface {
	RefEl() types.ElementType
	Corners() []r2.Vec
	// Global maps a point of the reference element to physical coordinates
	Global(ref r2.Vec) r2.Vec
	// IntegrationElement is the Gram determinant of the map at ref
	IntegrationElement(ref r2.Vec) float64
	// Volume is the length, area of the entity
	Volume() float64
	Centroid() r2.Vec
}

/*
TriangleGeometry is the affine map from the reference triangle (0,0),(1,0),(0,1):

	x(r,s) = a + (b-a) r + (c-a) s
*/
type TriangleGeometry struct {
	A, B, C r2.Vec
}

func (tg TriangleGeometry) RefEl() types.ElementType { return types.Triangle }
func (tg TriangleGeometry) Corners() []r2.Vec        { return []r2.Vec{tg.A, tg.B, tg.C} }

func (tg TriangleGeometry) Global(ref r2.Vec) r2.Vec {
	return r2.Add(tg.A, r2.Add(r2.Scale(ref.X, r2.Sub(tg.B, tg.A)), r2.Scale(ref.Y, r2.Sub(tg.C, tg.A))))
}

func (tg TriangleGeometry) IntegrationElement(r2.Vec) float64 {
	return math.Abs(geometry2D.SignedArea2(tg.A, tg.B, tg.C))
}

func (tg TriangleGeometry) Volume() float64 {
	return 0.5 * math.Abs(geometry2D.SignedArea2(tg.A, tg.B, tg.C))
}

func (tg TriangleGeometry) Centroid() r2.Vec {
	return r2.Vec{X: (tg.A.X + tg.B.X + tg.C.X) / 3, Y: (tg.A.Y + tg.B.Y + tg.C.Y) / 3}
}

/*
QuadGeometry is the bilinear map from the reference square [0,1]x[0,1]:

	x(r,s) = (1-r)(1-s) a + r(1-s) b + r s c + (1-r) s d
*/
type QuadGeometry struct {
	A, B, C, D r2.Vec
}

func (qg QuadGeometry) RefEl() types.ElementType { return types.Quad }
func (qg QuadGeometry) Corners() []r2.Vec        { return []r2.Vec{qg.A, qg.B, qg.C, qg.D} }

func (qg QuadGeometry) Global(ref r2.Vec) r2.Vec {
	r, s := ref.X, ref.Y
	return r2.Add(
		r2.Add(r2.Scale((1-r)*(1-s), qg.A), r2.Scale(r*(1-s), qg.B)),
		r2.Add(r2.Scale(r*s, qg.C), r2.Scale((1-r)*s, qg.D)))
}

func (qg QuadGeometry) IntegrationElement(ref r2.Vec) float64 {
	r, s := ref.X, ref.Y
	dr := r2.Add(r2.Scale(1-s, r2.Sub(qg.B, qg.A)), r2.Scale(s, r2.Sub(qg.C, qg.D)))
	ds := r2.Add(r2.Scale(1-r, r2.Sub(qg.D, qg.A)), r2.Scale(r, r2.Sub(qg.C, qg.B)))
	return math.Abs(r2.Cross(dr, ds))
}

func (qg QuadGeometry) Volume() float64 {
	return 0.5 * math.Abs(geometry2D.SignedArea2(qg.A, qg.B, qg.C)+geometry2D.SignedArea2(qg.A, qg.C, qg.D))
}

func (qg QuadGeometry) Centroid() r2.Vec {
	return qg.Global(r2.Vec{X: 0.5, Y: 0.5})
}

// SegmentGeometry is the affine map from the reference segment [0,1]
type SegmentGeometry struct {
	A, B r2.Vec
}

func (sg SegmentGeometry) RefEl() types.ElementType          { return types.Line }
func (sg SegmentGeometry) Corners() []r2.Vec                 { return []r2.Vec{sg.A, sg.B} }
func (sg SegmentGeometry) Global(ref r2.Vec) r2.Vec          { return r2.Add(sg.A, r2.Scale(ref.X, r2.Sub(sg.B, sg.A))) }
func (sg SegmentGeometry) IntegrationElement(r2.Vec) float64 { return sg.Volume() }
func (sg SegmentGeometry) Volume() float64                   { return r2.Norm(r2.Sub(sg.B, sg.A)) }
func (sg SegmentGeometry) Centroid() r2.Vec                  { return geometry2D.Midpoint(sg.A, sg.B) }

// CellGeometry returns the geometry map of cell k
func (m *Mesh) CellGeometry(k int) Geometry {
	verts := m.Cells[k]
	switch m.CellTypes[k] {
	case types.Quad:
		return QuadGeometry{
			A: m.Vertices[verts[0]], B: m.Vertices[verts[1]],
			C: m.Vertices[verts[2]], D: m.Vertices[verts[3]],
		}
	default:
		return TriangleGeometry{
			A: m.Vertices[verts[0]], B: m.Vertices[verts[1]], C: m.Vertices[verts[2]],
		}
	}
}

// Geometry returns the segment map of a boundary edge
func (be BoundaryEdge) Geometry(m *Mesh) SegmentGeometry {
	verts := be.Edge.GetVertices()
	return SegmentGeometry{A: m.Vertices[verts[0]], B: m.Vertices[verts[1]]}
}

// EdgeGeometry returns the segment map of edge i
func (m *Mesh) EdgeGeometry(i int) SegmentGeometry {
	verts := m.Edges[i].Key.GetVertices(false)
	return SegmentGeometry{A: m.Vertices[verts[0]], B: m.Vertices[verts[1]]}
}
