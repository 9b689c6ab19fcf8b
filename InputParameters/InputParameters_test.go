package InputParameters

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	{ // Overlay onto the defaults
		ip := NewInputParameters2D()
		require.NoError(t, ip.Parse([]byte(`
Title: "Saddle study"
Refinement: 32
Point: [0.45, 0.6]
Solution: saddle
Quadrature: edge-midpoint
ParallelDegree: 4
Levels: [4, 8, 16]
`)))
		want := &InputParameters2D{
			Title:          "Saddle study",
			Refinement:     32,
			Point:          [2]float64{0.45, 0.6},
			Solution:       "saddle",
			ParallelDegree: 4,
			Quadrature:     "edge-midpoint",
			Levels:         []int{4, 8, 16},
		}
		if diff := cmp.Diff(want, ip); diff != "" {
			t.Errorf("parameters mismatch (-want +got):\n%s", diff)
		}
	}
	{ // Unset keys keep their defaults
		ip := NewInputParameters2D()
		require.NoError(t, ip.Parse([]byte("MeshFile: square.msh\n")))
		assert.Equal(t, "square.msh", ip.MeshFile)
		assert.Equal(t, "log", ip.Solution)
		assert.Equal(t, [2]float64{0.3, 0.4}, ip.Point)
	}
	{ // Invalid values
		for _, bad := range []string{
			"Refinement: 0\n",
			"ParallelDegree: -2\n",
			"Levels: [4, 0]\n",
			"Point: not-a-point\n",
		} {
			assert.Error(t, NewInputParameters2D().Parse([]byte(bad)), bad)
		}
	}
}

func TestReadFileRoundTrip(t *testing.T) {
	ip := NewInputParameters2D()
	ip.Title = "round trip"
	ip.Levels = []int{2, 4}
	data, err := ip.Marshal()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "input.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	got := &InputParameters2D{}
	require.NoError(t, got.ReadFile(path))
	assert.Equal(t, ip, got)

	assert.Error(t, got.ReadFile(filepath.Join(t.TempDir(), "missing.yaml")))

	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "\"round trip\"")
	assert.Contains(t, buf.String(), "= Refinement")
}

func TestValidatePoint(t *testing.T) {
	ip := NewInputParameters2D()
	require.NoError(t, ip.Validate())
	for _, p := range [][2]float64{{math.NaN(), 0.4}, {0.3, math.Inf(1)}, {math.Inf(-1), 0.4}} {
		ip.Point = p
		assert.ErrorContains(t, ip.Validate(), "finite", p)
	}
}
