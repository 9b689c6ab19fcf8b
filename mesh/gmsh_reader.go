package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/laplace2d/types"
)

// gmshElementType2_2 maps the Gmsh 2.2 element types of a planar mesh to ElementType
var gmshElementType2_2 = map[int]types.ElementType{
	1:  types.Line,
	2:  types.Triangle,
	3:  types.Quad,
	15: types.Point,
}

// ReadGmsh22 reads an ASCII Gmsh 2.2 file. Lines carrying a physical tag whose name contains a side of the unit
// square (e.g. "Bottom", "left") label the boundary edges they cover.
func ReadGmsh22(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseGmsh22(file)
}

// ParseGmsh22 reads Gmsh 2.2 ASCII content from r
func ParseGmsh22(r io.Reader) (*Mesh, error) {
	var (
		mesh    = NewMesh()
		scanner = bufio.NewScanner(r)
		lines   []gmshLine
	)
	// Increase scanner buffer for large files
	const maxScanTokenSize = 1024 * 1024 * 10 // 10MB
	scanner.Buffer(make([]byte, 64*1024), maxScanTokenSize)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "$MeshFormat":
			if err := readMeshFormat(scanner, mesh); err != nil {
				return nil, err
			}

		case "$PhysicalNames":
			if err := readPhysicalNames(scanner, mesh); err != nil {
				return nil, err
			}

		case "$Nodes":
			if err := readNodes(scanner, mesh); err != nil {
				return nil, err
			}

		case "$Elements":
			var err error
			if lines, err = readElements(scanner, mesh); err != nil {
				return nil, err
			}

		case "$NodeData", "$ElementData", "$ElementNodeData", "$Periodic":
			if err := skipSection(scanner, "$End"+line[1:]); err != nil {
				return nil, err
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	if mesh.FormatVersion == "" {
		return nil, fmt.Errorf("no $MeshFormat section found")
	}
	// Physical names may follow the elements, so label sides last
	for _, l := range lines {
		side := types.NewBCFLAG(mesh.BoundaryTags[l.tag])
		if side == types.BC_None {
			continue
		}
		if err := mesh.AddBoundarySegment(side, l.nodes); err != nil {
			return nil, err
		}
	}
	if err := mesh.BuildConnectivity(); err != nil {
		return nil, err
	}
	return mesh, nil
}

type gmshLine struct {
	tag   int
	nodes [2]int
}

// readMeshFormat reads the MeshFormat section
func readMeshFormat(scanner *bufio.Scanner, mesh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}

	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2") {
		return fmt.Errorf("unsupported Gmsh version: %s", parts[0])
	}
	if parts[1] != "0" {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	mesh.FormatVersion = parts[0]

	return skipSection(scanner, "$EndMeshFormat")
}

// readPhysicalNames reads physical entity names
func readPhysicalNames(scanner *bufio.Scanner, mesh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in PhysicalNames")
	}

	numPhysical, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of physical names: %w", err)
	}

	for i := 0; i < numPhysical; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in PhysicalNames")
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return fmt.Errorf("invalid physical name entry")
		}

		tag, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("invalid physical tag: %w", err)
		}
		mesh.BoundaryTags[tag] = strings.Trim(strings.Join(fields[2:], " "), "\"")
	}

	return skipSection(scanner, "$EndPhysicalNames")
}

// readNodes reads the Nodes section, the z coordinate is dropped
func readNodes(scanner *bufio.Scanner, mesh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}

	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid number of nodes: %w", err)
	}

	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF in Nodes at node %d", i)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return fmt.Errorf("invalid node entry at line %d", i+1)
		}

		nodeID, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("invalid node ID: %w", err)
		}

		var coords [2]float64
		for j := 0; j < 2; j++ {
			if coords[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return fmt.Errorf("invalid coordinate: %w", err)
			}
		}

		mesh.AddNode(nodeID, coords[0], coords[1])
	}

	return skipSection(scanner, "$EndNodes")
}

// readElements reads the Elements section, cells go into the mesh and line elements are returned for labeling
func readElements(scanner *bufio.Scanner, mesh *Mesh) (lines []gmshLine, err error) {
	if !scanner.Scan() {
		return nil, fmt.Errorf("unexpected EOF in Elements")
	}

	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, fmt.Errorf("invalid number of elements: %w", err)
	}

	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("unexpected EOF in Elements at element %d", i)
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			return nil, fmt.Errorf("invalid element entry at line %d", i+1)
		}

		ints := make([]int, len(fields))
		for j, f := range fields {
			if ints[j], err = strconv.Atoi(f); err != nil {
				return nil, fmt.Errorf("invalid element entry at line %d: %w", i+1, err)
			}
		}
		gmshType, numTags := ints[1], ints[2]
		startIdx := 3 + numTags
		if startIdx > len(ints) {
			return nil, fmt.Errorf("insufficient fields for tags at element %d", ints[0])
		}
		var physicalTag int
		if numTags > 0 {
			physicalTag = ints[3]
		}

		elemType, ok := gmshElementType2_2[gmshType]
		if !ok {
			return nil, fmt.Errorf("element %d: Gmsh type %d is not a supported planar element", ints[0], gmshType)
		}
		nodeIDs := ints[startIdx:]
		if len(nodeIDs) != elemType.NumVertices() {
			return nil, fmt.Errorf("element type %v expects %d nodes, got %d",
				elemType, elemType.NumVertices(), len(nodeIDs))
		}

		switch elemType {
		case types.Line:
			lines = append(lines, gmshLine{tag: physicalTag, nodes: [2]int{nodeIDs[0], nodeIDs[1]}})
		case types.Triangle, types.Quad:
			if err = mesh.AddCell(elemType, physicalTag, nodeIDs); err != nil {
				return nil, err
			}
		}
	}

	return lines, skipSection(scanner, "$EndElements")
}

// skipSection advances past the line endTag
func skipSection(scanner *bufio.Scanner, endTag string) error {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endTag {
			return nil
		}
	}
	return fmt.Errorf("missing %s", endTag)
}
