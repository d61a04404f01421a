package margins

import (
	"errors"
	"fmt"
	"math"
)

// PointsPerInch is the PDF user-space unit conversion factor.
const PointsPerInch = 72.0

// ErrSliderOutOfRange is returned when a slider fraction is outside [0,1] or NaN.
var ErrSliderOutOfRange = errors.New("slider value out of range")

// PageSize is a physical page size in inches
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Letter is the page size assumed when the document's own size is not used.
var Letter = PageSize{Width: 8.5, Height: 11}

// PageSizeFromPoints converts a page size given in PDF points to inches.
func PageSizeFromPoints(width, height float64) PageSize {
	return PageSize{Width: width / PointsPerInch, Height: height / PointsPerInch}
}

// Sliders holds the four normalized slider positions.
// Bottom and Right run inverted: 1 means no margin on that edge.
type Sliders struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Bottom float64 `json:"bottom"`
	Right  float64 `json:"right"`
}

// DefaultSliders returns the slider positions that produce zero margins.
func DefaultSliders() Sliders {
	return Sliders{Top: 0, Left: 0, Bottom: 1, Right: 1}
}

// Validate reports whether every slider lies in [0,1].
func (s Sliders) Validate() error {
	values := map[string]float64{"top": s.Top, "left": s.Left, "bottom": s.Bottom, "right": s.Right}
	for _, name := range []string{"top", "left", "bottom", "right"} {
		v := values[name]
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v", ErrSliderOutOfRange, name, v)
		}
	}
	return nil
}

// Clamp pins each slider into [0,1]. NaN becomes 0.
func (s Sliders) Clamp() Sliders {
	return Sliders{
		Top:    clamp01(s.Top),
		Left:   clamp01(s.Left),
		Bottom: clamp01(s.Bottom),
		Right:  clamp01(s.Right),
	}
}

// Quantize rounds each slider to the 0.01 resolution of the slider widgets.
func (s Sliders) Quantize() Sliders {
	return Sliders{
		Top:    math.Round(s.Top*100) / 100,
		Left:   math.Round(s.Left*100) / 100,
		Bottom: math.Round(s.Bottom*100) / 100,
		Right:  math.Round(s.Right*100) / 100,
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Margins are absolute page margins in inches.
type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Compute maps slider positions onto margins for the given page.
// Each margin can reach at most half of its page dimension.
func Compute(s Sliders, page PageSize) Margins {
	halfW := page.Width / 2
	halfH := page.Height / 2
	return Margins{
		Left:   s.Left * halfW,
		Top:    s.Top * halfH,
		Bottom: (1 - s.Bottom) * halfH,
		Right:  (1 - s.Right) * halfW,
	}
}
