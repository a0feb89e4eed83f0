// Package quote estimates how many wallpaper rolls a set of walls needs and
// drafts the order message sent to the store over WhatsApp.
package quote

import "math"

// Physical dimensions of one roll, in centimeters.
const (
	RollWidth  = 120
	RollHeight = 300

	// CutAllowance is the extra length added to each cut strip for trimming.
	CutAllowance = 10

	// MaxMeasurement caps a wall dimension (1 km). Larger input is read as
	// MaxMeasurement.
	MaxMeasurement = 100000
)

// Wall is one rectangular surface to be covered, measured in centimeters.
// A zero or negative dimension means "not measured yet".
type Wall struct {
	ID     string  `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are strictly positive and finite.
func (w Wall) Valid() bool {
	return positive(w.Width) && positive(w.Height)
}

// CutHeight is the strip length to cut for this wall: its height plus the
// trimming allowance. Zero for an unmeasured wall.
func (w Wall) CutHeight() float64 {
	if !w.Valid() {
		return 0
	}
	return w.Height + CutAllowance
}

// RollRequirement is the calculator output for a single wall.
type RollRequirement struct {
	WallID        string `json:"wallId"`
	WidthStrips   int    `json:"widthStrips"`
	HeightRepeats int    `json:"heightRepeats"`
	RollCount     int    `json:"rollCount"`
}

// CalculateRolls returns one requirement per wall, in input order.
//
// Each strip covers RollWidth of wall width and each repeat covers RollHeight
// of wall height; partial strips and repeats round up. Unmeasured or
// non-finite walls need zero rolls.
func CalculateRolls(walls []Wall) []RollRequirement {
	reqs := make([]RollRequirement, len(walls))
	for i, w := range walls {
		reqs[i] = RollRequirement{WallID: w.ID}
		if !w.Valid() {
			continue
		}
		strips := int(math.Ceil(capMeasurement(w.Width) / RollWidth))
		repeats := int(math.Ceil(capMeasurement(w.Height) / RollHeight))
		reqs[i].WidthStrips = strips
		reqs[i].HeightRepeats = repeats
		reqs[i].RollCount = strips * repeats
	}
	return reqs
}

// TotalRolls sums the roll count of every requirement.
func TotalRolls(reqs []RollRequirement) int {
	total := 0
	for _, r := range reqs {
		total += r.RollCount
	}
	return total
}

// ValidWalls returns the measured walls, preserving order.
func ValidWalls(walls []Wall) []Wall {
	valid := make([]Wall, 0, len(walls))
	for _, w := range walls {
		if w.Valid() {
			valid = append(valid, w)
		}
	}
	return valid
}

func capMeasurement(v float64) float64 {
	return math.Min(v, MaxMeasurement)
}

// positive is false for NaN, ±Inf and anything <= 0.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
