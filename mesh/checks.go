package mesh

import (
	"fmt"
	"io"
	"math"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/notargets/laplace2d/types"
	"gonum.org/v1/gonum/spatial/r2"
)

// MeshSize is the length of the longest edge
func (m *Mesh) MeshSize() (h float64) {
	for i := range m.Edges {
		h = math.Max(h, m.EdgeGeometry(i).Volume())
	}
	return
}

// TotalArea sums the cell areas
func (m *Mesh) TotalArea() (area float64) {
	for k := range m.Cells {
		area += m.CellGeometry(k).Volume()
	}
	return
}

// IsTriangulated reports whether every cell is a triangle
func (m *Mesh) IsTriangulated() bool {
	for _, t := range m.CellTypes {
		if t != types.Triangle {
			return false
		}
	}
	return true
}

/*
CheckUnitSquare verifies the mesh partitions [0,1]x[0,1]:
  - the bounding box is the unit square
  - the cells are non degenerate and their areas sum to one
  - every boundary edge lies on a side of the square and its stored normal is that side's normal
  - the boundary is a single closed curve
*/
func (m *Mesh) CheckUnitSquare(tol float64) (err error) {
	box := geometry2D.NewBoundingBox(m.Vertices)
	if box == nil {
		return fmt.Errorf("mesh has no vertices")
	}
	if err = box.IsUnitSquare(tol); err != nil {
		return
	}
	for k := range m.Cells {
		if m.CellGeometry(k).Volume() <= tol*tol {
			return fmt.Errorf("cell %d is degenerate", k)
		}
	}
	if area := m.TotalArea(); math.Abs(area-1) > tol {
		return fmt.Errorf("cell areas sum to %v, not 1", area)
	}
	for i, be := range m.BoundaryEdges {
		geo := be.Geometry(m)
		mid := geo.Centroid()
		if !geometry2D.OnUnitSquareBoundary(geo.A, tol) || !geometry2D.OnUnitSquareBoundary(geo.B, tol) {
			return fmt.Errorf("boundary edge %d at %v is not on the unit square", i, mid)
		}
		want := geometry2D.UnitSquareNormal(mid)
		if r2.Norm(r2.Sub(want, be.Normal)) > tol {
			return fmt.Errorf("boundary edge %d at %v has normal %v, the side normal is %v", i, mid, be.Normal, want)
		}
		if be.Side != types.BC_None {
			sn := be.Side.Normal()
			if sn[0] != want.X || sn[1] != want.Y {
				return fmt.Errorf("boundary edge %d at %v is labeled %s", i, mid, be.Side)
			}
		}
	}
	var loops int
	if loops, err = m.BoundaryCurve().ReOrder(false); err != nil {
		return
	}
	if loops != 1 {
		return fmt.Errorf("boundary has %d loops, expected one", loops)
	}
	return
}

// PrintStatistics writes mesh statistics to w
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices())
	fmt.Fprintf(w, "  Cells: %d\n", m.NumCells())
	fmt.Fprintf(w, "  Edges: %d\n", len(m.Edges))
	fmt.Fprintf(w, "  Boundary edges: %d\n", len(m.BoundaryEdges))
	fmt.Fprintf(w, "  Mesh size h: %8.5f\n", m.MeshSize())

	typeCounts := make(map[types.ElementType]int)
	for _, t := range m.CellTypes {
		typeCounts[t]++
	}
	fmt.Fprintf(w, "  Cell types:\n")
	for _, t := range []types.ElementType{types.Point, types.Line, types.Triangle, types.Quad} {
		if count := typeCounts[t]; count > 0 {
			fmt.Fprintf(w, "    %s: %d\n", t, count)
		}
	}
	if box := geometry2D.NewBoundingBox(m.Vertices); box != nil {
		fmt.Fprintf(w, "  Bounding Box: %s\n", box)
	}
}
