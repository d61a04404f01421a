package margins

const (
	// sliderHalfLength is half the on-screen slider thumb length in pixels.
	sliderHalfLength = 7.0
	// sliderGap separates the two sliders sharing an axis.
	sliderGap = 5.0
)

// Guides are the pixel positions of the four margin lines drawn over the preview.
type Guides struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// ComputeGuides places the guide lines for a preview of width x height pixels.
// Each line travels over its own half of the image, offset by the slider geometry
// so it stays aligned with the thumb that drives it.
func ComputeGuides(s Sliders, width, height float64) Guides {
	d, g := sliderHalfLength, sliderGap
	return Guides{
		Top:    s.Top * (height/2 - d),
		Bottom: height/2 + d + g + s.Bottom*(height/2-d-g),
		Left:   s.Left * (width/2 - d),
		Right:  width/2 + d + g + s.Right*(width/2-d-g),
	}
}
