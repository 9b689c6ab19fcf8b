package types

import "strings"

// BCFLAG labels the side of the unit square a boundary edge lies on
type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_Bottom
	BC_Right
	BC_Top
	BC_Left
)

var BCNameMap = map[string]BCFLAG{
	"bottom": BC_Bottom,
	"south":  BC_Bottom,
	"right":  BC_Right,
	"east":   BC_Right,
	"top":    BC_Top,
	"north":  BC_Top,
	"left":   BC_Left,
	"west":   BC_Left,
}

func (bc BCFLAG) String() string {
	switch bc {
	case BC_Bottom:
		return "Bottom"
	case BC_Right:
		return "Right"
	case BC_Top:
		return "Top"
	case BC_Left:
		return "Left"
	}
	return "None"
}

// NewBCFLAG parses a physical group or marker name such as "Bottom", "wall-left" or "North-2"
func NewBCFLAG(name string) (bc BCFLAG) {
	for _, token := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	}) {
		if flag, ok := BCNameMap[token]; ok {
			return flag
		}
	}
	return BC_None
}

// Normal returns the outward unit normal of the side, zero for BC_None
func (bc BCFLAG) Normal() (n [2]float64) {
	switch bc {
	case BC_Bottom:
		n = [2]float64{0, -1}
	case BC_Right:
		n = [2]float64{1, 0}
	case BC_Top:
		n = [2]float64{0, 1}
	case BC_Left:
		n = [2]float64{-1, 0}
	}
	return
}
