package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRolls(t *testing.T) {
	tests := []struct {
		name          string
		wall          Wall
		widthStrips   int
		heightRepeats int
		rollCount     int
	}{
		{"single strip single repeat", Wall{Width: 100, Height: 250}, 1, 1, 1},
		{"exact roll width", Wall{Width: 120, Height: 300}, 1, 1, 1},
		{"wide wall under one roll height", Wall{Width: 300, Height: 280}, 3, 1, 3},
		{"two strips", Wall{Width: 200, Height: 250}, 2, 1, 2},
		{"tall wall needs repeats", Wall{Width: 150, Height: 400}, 2, 2, 4},
		{"fractional measurements round up", Wall{Width: 120.5, Height: 300.1}, 2, 2, 4},
		{"zero width", Wall{Width: 0, Height: 250}, 0, 0, 0},
		{"zero height", Wall{Width: 250, Height: 0}, 0, 0, 0},
		{"negative width", Wall{Width: -10, Height: 250}, 0, 0, 0},
		{"NaN height", Wall{Width: 200, Height: math.NaN()}, 0, 0, 0},
		{"NaN width", Wall{Width: math.NaN(), Height: 200}, 0, 0, 0},
		{"infinite width", Wall{Width: math.Inf(1), Height: 200}, 0, 0, 0},
		{"negative infinite height", Wall{Width: 200, Height: math.Inf(-1)}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wall.ID = "w1"
			reqs := CalculateRolls([]Wall{tt.wall})

			require.Len(t, reqs, 1)
			assert.Equal(t, "w1", reqs[0].WallID)
			assert.Equal(t, tt.widthStrips, reqs[0].WidthStrips)
			assert.Equal(t, tt.heightRepeats, reqs[0].HeightRepeats)
			assert.Equal(t, tt.rollCount, reqs[0].RollCount)
		})
	}
}

func TestCalculateRolls_PreservesOrderAndCount(t *testing.T) {
	walls := []Wall{
		{ID: "a", Width: 200, Height: 250},
		{ID: "b", Width: 0, Height: 250},
		{ID: "c", Width: 150, Height: 400},
	}

	reqs := CalculateRolls(walls)

	require.Len(t, reqs, 3)
	assert.Equal(t, "a", reqs[0].WallID)
	assert.Equal(t, "b", reqs[1].WallID)
	assert.Equal(t, "c", reqs[2].WallID)
	assert.Equal(t, 0, reqs[1].RollCount)
	assert.Empty(t, CalculateRolls(nil))
}

func TestTotalRolls_TwoWalls(t *testing.T) {
	walls := []Wall{
		{ID: "1", Width: 200, Height: 250},
		{ID: "2", Width: 150, Height: 400},
	}

	reqs := CalculateRolls(walls)

	assert.Equal(t, 2, reqs[0].RollCount)
	assert.Equal(t, 4, reqs[1].RollCount)
	assert.Equal(t, 6, TotalRolls(reqs))
}

func TestCalculateRolls_MatchesCeilFormula(t *testing.T) {
	for width := 1.0; width <= 600; width += 37 {
		for height := 1.0; height <= 900; height += 53 {
			reqs := CalculateRolls([]Wall{{Width: width, Height: height}})
			want := int(math.Ceil(width/RollWidth)) * int(math.Ceil(height/RollHeight))
			if reqs[0].RollCount != want {
				t.Fatalf("CalculateRolls(%v x %v) = %d, want %d", width, height, reqs[0].RollCount, want)
			}
		}
	}
}

func TestCalculateRolls_MonotonicInBothDimensions(t *testing.T) {
	prev := 0
	for width := 10.0; width <= 1000; width += 10 {
		got := CalculateRolls([]Wall{{Width: width, Height: 280}})[0].RollCount
		assert.GreaterOrEqual(t, got, prev, "width %v", width)
		prev = got
	}

	prev = 0
	for height := 10.0; height <= 1500; height += 10 {
		got := CalculateRolls([]Wall{{Width: 240, Height: height}})[0].RollCount
		assert.GreaterOrEqual(t, got, prev, "height %v", height)
		prev = got
	}
}

func TestCalculateRolls_HugeMeasurementsAreCapped(t *testing.T) {
	maxStrips := int(math.Ceil(float64(MaxMeasurement) / RollWidth))
	maxRepeats := int(math.Ceil(float64(MaxMeasurement) / RollHeight))

	tests := []struct {
		name string
		wall Wall
		want RollRequirement
	}{
		{
			name: "1e300 width",
			wall: Wall{ID: "a", Width: 1e300, Height: 280},
			want: RollRequirement{WallID: "a", WidthStrips: maxStrips, HeightRepeats: 1, RollCount: maxStrips},
		},
		{
			name: "1e17 by 1e17",
			wall: Wall{ID: "b", Width: 1e17, Height: 1e17},
			want: RollRequirement{WallID: "b", WidthStrips: maxStrips, HeightRepeats: maxRepeats, RollCount: maxStrips * maxRepeats},
		},
		{
			name: "max float",
			wall: Wall{ID: "c", Width: math.MaxFloat64, Height: math.MaxFloat64},
			want: RollRequirement{WallID: "c", WidthStrips: maxStrips, HeightRepeats: maxRepeats, RollCount: maxStrips * maxRepeats},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reqs := CalculateRolls([]Wall{tt.wall})
			assert.Equal(t, tt.want, reqs[0])
			assert.Positive(t, TotalRolls(reqs))
		})
	}
}

func TestCalculateRolls_MonotonicPastTheCap(t *testing.T) {
	prev := 0
	for _, width := range []float64{1e4, 1e5, 1e5 + 1, 1e9, 1e17, 1e300} {
		got := CalculateRolls([]Wall{{Width: width, Height: 280}})[0].RollCount
		assert.GreaterOrEqual(t, got, prev, "width %v", width)
		prev = got
	}
}

func TestValidWalls(t *testing.T) {
	walls := []Wall{
		{ID: "1", Width: 0, Height: 250},
		{ID: "2", Width: 300, Height: 280},
		{ID: "3", Width: 100, Height: -1},
		{ID: "4", Width: 10, Height: 10},
	}

	valid := ValidWalls(walls)

	require.Len(t, valid, 2)
	assert.Equal(t, "2", valid[0].ID)
	assert.Equal(t, "4", valid[1].ID)
}

func TestWall_CutHeight(t *testing.T) {
	assert.Equal(t, 290.0, Wall{Width: 300, Height: 280}.CutHeight())
	assert.Equal(t, 260.5, Wall{Width: 100, Height: 250.5}.CutHeight())
	assert.Zero(t, Wall{Width: 300}.CutHeight())
}
