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

// su2ElementType maps the SU2 (VTK) element types of a planar mesh to ElementType
var su2ElementType = map[int]types.ElementType{
	3: types.Line,
	5: types.Triangle,
	9: types.Quad,
}

// ReadSU2 reads a two dimensional SU2 native format file. Markers whose tag names a side of the unit square label
// the boundary edges they list.
func ReadSU2(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSU2(file)
}

type su2Element struct {
	elemType types.ElementType
	nodes    []int
}

// ParseSU2 reads SU2 content from r
func ParseSU2(r io.Reader) (*Mesh, error) {
	var (
		mesh    = NewMesh()
		scanner = bufio.NewScanner(r)
		ndime   int
		// NELEM usually precedes NPOIN, cells are added once the points are known
		cells   []su2Element
		markers = make(map[string][]su2Element)
		order   []string
	)

	nextLine := func(section string) ([]string, error) {
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "%") {
				continue
			}
			return strings.Fields(line), nil
		}
		return nil, fmt.Errorf("unexpected EOF in %s", section)
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "%") || line == "" {
			continue
		}
		key, value, ok := splitSU2Keyword(line)
		if !ok {
			return nil, fmt.Errorf("unexpected line %q", line)
		}

		switch key {
		case "NDIME":
			var err error
			if ndime, err = strconv.Atoi(value); err != nil {
				return nil, fmt.Errorf("invalid NDIME: %w", err)
			}
			if ndime != 2 {
				return nil, fmt.Errorf("unsupported dimension NDIME=%d, only planar meshes are read", ndime)
			}

		case "NELEM":
			nelem, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid NELEM: %w", err)
			}
			cells = make([]su2Element, 0, nelem)
			for i := 0; i < nelem; i++ {
				fields, err := nextLine("NELEM")
				if err != nil {
					return nil, err
				}
				el, err := parseSU2Element(fields)
				if err != nil {
					return nil, fmt.Errorf("element %d: %w", i, err)
				}
				cells = append(cells, el)
			}

		case "NPOIN":
			if ndime == 0 {
				return nil, fmt.Errorf("NPOIN found before NDIME")
			}
			// Some writers append the number of domain points after the total
			counts := strings.Fields(value)
			if len(counts) == 0 {
				return nil, fmt.Errorf("NPOIN has no value")
			}
			npoin, err := strconv.Atoi(counts[0])
			if err != nil {
				return nil, fmt.Errorf("invalid NPOIN: %w", err)
			}
			for i := 0; i < npoin; i++ {
				fields, err := nextLine("NPOIN")
				if err != nil {
					return nil, err
				}
				if len(fields) < ndime {
					return nil, fmt.Errorf("point %d has %d coordinates", i, len(fields))
				}
				var coords [2]float64
				for j := 0; j < 2; j++ {
					if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate of point %d: %w", i, err)
					}
				}
				id := i
				if len(fields) > ndime {
					if id, err = strconv.Atoi(fields[ndime]); err != nil {
						return nil, fmt.Errorf("invalid index of point %d: %w", i, err)
					}
				}
				mesh.AddNode(id, coords[0], coords[1])
			}

		case "NMARK":
			nmark, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid NMARK: %w", err)
			}
			for i := 0; i < nmark; i++ {
				fields, err := nextLine("NMARK")
				if err != nil {
					return nil, err
				}
				k, tag, ok := splitSU2Keyword(strings.Join(fields, " "))
				if !ok || k != "MARKER_TAG" {
					return nil, fmt.Errorf("marker %d: expected MARKER_TAG", i)
				}
				if fields, err = nextLine("NMARK"); err != nil {
					return nil, err
				}
				k, v, ok := splitSU2Keyword(strings.Join(fields, " "))
				if !ok || k != "MARKER_ELEMS" {
					return nil, fmt.Errorf("marker %s: expected MARKER_ELEMS", tag)
				}
				nElems, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("marker %s: invalid MARKER_ELEMS: %w", tag, err)
				}
				mesh.BoundaryTags[i] = tag
				order = append(order, tag)
				for j := 0; j < nElems; j++ {
					if fields, err = nextLine("MARKER_ELEMS"); err != nil {
						return nil, err
					}
					el, err := parseSU2Element(fields)
					if err != nil {
						return nil, fmt.Errorf("marker %s element %d: %w", tag, j, err)
					}
					if el.elemType != types.Line {
						return nil, fmt.Errorf("marker %s element %d is a %s, not a line", tag, j, el.elemType)
					}
					markers[tag] = append(markers[tag], el)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}
	if ndime == 0 {
		return nil, fmt.Errorf("missing NDIME")
	}

	for i, el := range cells {
		if el.elemType == types.Line {
			return nil, fmt.Errorf("element %d is a line, cells must be triangles or quads", i)
		}
		if err := mesh.AddCell(el.elemType, 0, el.nodes); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	for _, tag := range order {
		side := types.NewBCFLAG(tag)
		if side == types.BC_None {
			continue
		}
		for _, el := range markers[tag] {
			if err := mesh.AddBoundarySegment(side, [2]int{el.nodes[0], el.nodes[1]}); err != nil {
				return nil, fmt.Errorf("marker %s: %w", tag, err)
			}
		}
	}
	mesh.FormatVersion = "SU2"
	if err := mesh.BuildConnectivity(); err != nil {
		return nil, err
	}
	return mesh, nil
}

// splitSU2Keyword splits "KEY= value", spaces around '=' are optional
func splitSU2Keyword(line string) (key, value string, ok bool) {
	var found bool
	if key, value, found = strings.Cut(line, "="); !found {
		return
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

// parseSU2Element reads "type n0 n1 ... [index]"
func parseSU2Element(fields []string) (el su2Element, err error) {
	if len(fields) < 2 {
		err = fmt.Errorf("too few fields")
		return
	}
	var su2Type int
	if su2Type, err = strconv.Atoi(fields[0]); err != nil {
		err = fmt.Errorf("invalid element type: %w", err)
		return
	}
	var ok bool
	if el.elemType, ok = su2ElementType[su2Type]; !ok {
		err = fmt.Errorf("SU2 type %d is not a supported planar element", su2Type)
		return
	}
	nv := el.elemType.NumVertices()
	if len(fields) < nv+1 {
		err = fmt.Errorf("%s expects %d nodes, got %d", el.elemType, nv, len(fields)-1)
		return
	}
	el.nodes = make([]int, nv)
	for j := 0; j < nv; j++ {
		if el.nodes[j], err = strconv.Atoi(fields[1+j]); err != nil {
			err = fmt.Errorf("invalid node index: %w", err)
			return
		}
	}
	return
}
