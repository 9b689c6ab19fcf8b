package geometry2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type BoundingBox struct {
	XMin [2]float64
	XMax [2]float64
}

func NewBoundingBox(Geometry []r2.Vec) (Box *BoundingBox) {
	if len(Geometry) == 0 {
		return nil
	}
	Box = new(BoundingBox)
	Box.XMin[0], Box.XMin[1] = Geometry[0].X, Geometry[0].Y
	Box.XMax[0], Box.XMax[1] = Geometry[0].X, Geometry[0].Y
	for _, point := range Geometry {
		X := [2]float64{point.X, point.Y}
		for i := 0; i < 2; i++ {
			if X[i] < Box.XMin[i] {
				Box.XMin[i] = X[i]
			}
			if X[i] > Box.XMax[i] {
				Box.XMax[i] = X[i]
			}
		}
	}
	return Box
}

func (bb *BoundingBox) Centroid() (centroid r2.Vec) {
	return r2.Vec{
		X: 0.5 * (bb.XMax[0] + bb.XMin[0]),
		Y: 0.5 * (bb.XMax[1] + bb.XMin[1]),
	}
}

func (bb *BoundingBox) Scale(scale float64) (bbOut *BoundingBox) {
	bbOut = new(BoundingBox)
	for i := 0; i < 2; i++ {
		xRange := bb.XMax[i] - bb.XMin[i]
		centroid := bb.XMin[i] + 0.5*xRange
		bbOut.XMin[i] = scale*(bb.XMin[i]-centroid) + centroid
		bbOut.XMax[i] = scale*(bb.XMax[i]-centroid) + centroid
	}
	return bbOut
}

func (bb *BoundingBox) Grow(newBB *BoundingBox) {
	for i := 0; i < 2; i++ {
		bb.XMin[i] = math.Min(bb.XMin[i], newBB.XMin[i])
		bb.XMax[i] = math.Max(bb.XMax[i], newBB.XMax[i])
	}
}

func (bb *BoundingBox) Contains(p r2.Vec) bool {
	return p.X >= bb.XMin[0] && p.X <= bb.XMax[0] && p.Y >= bb.XMin[1] && p.Y <= bb.XMax[1]
}

// IsUnitSquare checks the box against [0,1]x[0,1] within tol
func (bb *BoundingBox) IsUnitSquare(tol float64) (err error) {
	for i := 0; i < 2; i++ {
		if math.Abs(bb.XMin[i]) > tol || math.Abs(bb.XMax[i]-1) > tol {
			err = fmt.Errorf("bounding box %s is not the unit square", bb)
			return
		}
	}
	return
}

func (bb *BoundingBox) String() string {
	return fmt.Sprintf("XMin/XMax = %5.3f, %5.3f YMin/YMax = %5.3f, %5.3f",
		bb.XMin[0], bb.XMax[0], bb.XMin[1], bb.XMax[1])
}
