package mesh

import (
	"fmt"

	"github.com/notargets/laplace2d/geometry2D"
	"github.com/notargets/laplace2d/types"
	"gonum.org/v1/gonum/spatial/r2"
)

// Edge is a unique edge of the triangulation with up to two connected cells
type Edge struct {
	Key           types.EdgeKey
	NumConnected  uint8  // Either 1 or 2
	ConnectedCell [2]int // Index numbers of cells connected to this edge
	LocalID       [2]int // Edge number within each connected cell
}

func (e *Edge) IsBoundary() bool {
	return e.NumConnected == 1
}

// BoundaryEdge is an edge with a single connected cell. Its vertices follow the traversal of the owning cell and
// the outward unit normal is stored with it.
type BoundaryEdge struct {
	Edge   types.EdgeInt
	Cell   int
	Normal r2.Vec
	Side   types.BCFLAG
}

// Mesh represents a planar unstructured mesh with edge connectivity
type Mesh struct {
	// Geometry
	Vertices []r2.Vec

	// Cell data
	Cells     [][]int             // Cell to vertex connectivity, counterclockwise
	CellTypes []types.ElementType // Triangle or Quad
	CellTags  []int               // Physical group of each cell

	// Boundary segments read from file, used to label boundary edges
	SideTags     map[types.EdgeKey]types.BCFLAG
	BoundaryTags map[int]string // Physical tag -> name

	// Connectivity (built by BuildConnectivity)
	Edges         []Edge
	EdgeMap       map[types.EdgeKey]int
	BoundaryEdges []BoundaryEdge

	// File metadata
	FormatVersion string
	nodeIDMap     map[int]int // file node ID -> vertex index
}

func NewMesh() *Mesh {
	return &Mesh{
		SideTags:     make(map[types.EdgeKey]types.BCFLAG),
		BoundaryTags: make(map[int]string),
		EdgeMap:      make(map[types.EdgeKey]int),
		nodeIDMap:    make(map[int]int),
	}
}

func (m *Mesh) NumCells() int    { return len(m.Cells) }
func (m *Mesh) NumVertices() int { return len(m.Vertices) }

// AddNode appends a vertex and remembers the ID it carries in a mesh file
func (m *Mesh) AddNode(nodeID int, x, y float64) {
	m.nodeIDMap[nodeID] = len(m.Vertices)
	m.Vertices = append(m.Vertices, r2.Vec{X: x, Y: y})
}

func (m *Mesh) GetNodeIndex(nodeID int) (idx int, ok bool) {
	idx, ok = m.nodeIDMap[nodeID]
	return
}

// AddCell appends a cell given by file node IDs. Cells are reoriented counterclockwise.
func (m *Mesh) AddCell(elemType types.ElementType, tag int, nodeIDs []int) (err error) {
	if elemType != types.Triangle && elemType != types.Quad {
		return fmt.Errorf("cell type %s is not a planar cell", elemType)
	}
	if len(nodeIDs) != elemType.NumVertices() {
		return fmt.Errorf("%s expects %d nodes, got %d", elemType, elemType.NumVertices(), len(nodeIDs))
	}
	verts := make([]int, len(nodeIDs))
	for i, id := range nodeIDs {
		var ok bool
		if verts[i], ok = m.nodeIDMap[id]; !ok {
			return fmt.Errorf("cell references unknown node %d", id)
		}
	}
	m.appendCell(elemType, tag, verts)
	return
}

func (m *Mesh) appendCell(elemType types.ElementType, tag int, verts []int) {
	a, b, c := m.Vertices[verts[0]], m.Vertices[verts[1]], m.Vertices[verts[2]]
	if geometry2D.SignedArea2(a, b, c) < 0 {
		// Reverse to counterclockwise, keeping the first vertex
		for i, j := 1, len(verts)-1; i < j; i, j = i+1, j-1 {
			verts[i], verts[j] = verts[j], verts[i]
		}
	}
	m.Cells = append(m.Cells, verts)
	m.CellTypes = append(m.CellTypes, elemType)
	m.CellTags = append(m.CellTags, tag)
}

// AddBoundarySegment records the side label of a boundary segment given by file node IDs
func (m *Mesh) AddBoundarySegment(side types.BCFLAG, nodeIDs [2]int) (err error) {
	var verts [2]int
	for i, id := range nodeIDs {
		var ok bool
		if verts[i], ok = m.nodeIDMap[id]; !ok {
			return fmt.Errorf("boundary segment references unknown node %d", id)
		}
	}
	m.SideTags[types.NewEdgeKey(verts)] = side
	return
}

// CellEdges returns the directed edges of a cell in traversal order
func (m *Mesh) CellEdges(k int) (edges []types.EdgeInt) {
	verts := m.Cells[k]
	nv := len(verts)
	edges = make([]types.EdgeInt, nv)
	for i := 0; i < nv; i++ {
		edges[i] = types.NewEdgeInt([2]int{verts[i], verts[(i+1)%nv]})
	}
	return
}

// BuildConnectivity builds the unique edges and the boundary edges with their outward normals
func (m *Mesh) BuildConnectivity() (err error) {
	K := m.NumCells()
	m.Edges = m.Edges[:0]
	m.EdgeMap = make(map[types.EdgeKey]int)
	for k := 0; k < K; k++ {
		cellEdges := m.CellEdges(k)
		for localID, e := range cellEdges {
			key := e.GetKey()
			if ind, exists := m.EdgeMap[key]; exists {
				edge := &m.Edges[ind]
				if edge.NumConnected > 1 {
					return fmt.Errorf("edge %v has more than two connected cells", key.GetVertices(false))
				}
				edge.ConnectedCell[1] = k
				edge.LocalID[1] = localID
				edge.NumConnected++
			} else {
				m.EdgeMap[key] = len(m.Edges)
				m.Edges = append(m.Edges, Edge{
					Key:           key,
					NumConnected:  1,
					ConnectedCell: [2]int{k, -1},
					LocalID:       [2]int{localID, -1},
				})
			}
		}
	}
	m.BoundaryEdges = m.BoundaryEdges[:0]
	for _, edge := range m.Edges {
		if !edge.IsBoundary() {
			continue
		}
		k := edge.ConnectedCell[0]
		e := m.CellEdges(k)[edge.LocalID[0]]
		verts := e.GetVertices()
		m.BoundaryEdges = append(m.BoundaryEdges, BoundaryEdge{
			Edge: e,
			Cell: k,
			Normal: geometry2D.OutwardNormal(m.Vertices[verts[0]], m.Vertices[verts[1]],
				m.CellGeometry(k).Centroid()),
			Side: m.SideTags[edge.Key],
		})
	}
	return
}

// BoundaryCurve returns the boundary edges as a directed curve
func (m *Mesh) BoundaryCurve() (c types.Curve) {
	c = make(types.Curve, len(m.BoundaryEdges))
	for i, be := range m.BoundaryEdges {
		c[i] = be.Edge
	}
	return
}
