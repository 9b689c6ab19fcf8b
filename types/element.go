package types

// ElementType is the reference element of a mesh entity
type ElementType uint8

const (
	Point ElementType = iota
	Line
	Triangle
	Quad
)

func (e ElementType) String() string {
	return [...]string{"Point", "Line", "Triangle", "Quad"}[e]
}

// Dimension of the reference element
func (e ElementType) Dimension() int {
	switch e {
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	}
	return 0
}

// NumVertices is the number of corner vertices of the reference element
func (e ElementType) NumVertices() int {
	return [...]int{1, 2, 3, 4}[e]
}
