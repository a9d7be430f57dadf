package catalog

import "sort"

// BandStep maps a minimum correct-answer count to a band value.
type BandStep struct {
	MinCorrect int     `json:"min_correct"`
	Band       float64 `json:"band"`
}

// BandScale is a step function from raw correct count to an IELTS band
// estimate. Scales are catalog data, so Academic and General Training tests
// can carry different thresholds without code changes.
type BandScale []BandStep

// Estimate returns the band for the given correct count. The scale is
// monotonic: more correct answers never yield a lower band.
func (s BandScale) Estimate(correct int) float64 {
	for _, step := range s {
		if correct >= step.MinCorrect {
			return step.Band
		}
	}
	return 0
}

// normalized returns the scale sorted by descending MinCorrect so Estimate
// can take the first matching step.
func (s BandScale) normalized() BandScale {
	out := make(BandScale, len(s))
	copy(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].MinCorrect > out[j].MinCorrect })
	return out
}

// DefaultReadingBands matches the Academic Reading thresholds the seed test
// was published with.
func DefaultReadingBands() BandScale {
	return BandScale{
		{MinCorrect: 36, Band: 8.5},
		{MinCorrect: 32, Band: 7.5},
		{MinCorrect: 28, Band: 6.5},
		{MinCorrect: 0, Band: 5.5},
	}
}

// DefaultListeningBands is the Listening counterpart.
func DefaultListeningBands() BandScale {
	return BandScale{
		{MinCorrect: 37, Band: 8.5},
		{MinCorrect: 32, Band: 7.5},
		{MinCorrect: 26, Band: 6.5},
		{MinCorrect: 0, Band: 5.5},
	}
}
