package layout

// Bounds is a rectangle on the page in millimetres, origin top left.
type Bounds struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

func (b Bounds) Height() float64 {
	return b.Bottom - b.Top
}

// Inset shrinks the bounds by m on every side.
func (b Bounds) Inset(m float64) Bounds {
	return Bounds{b.Top + m, b.Left + m, b.Bottom - m, b.Right - m}
}

// SplitColumns divides the bounds into n columns of equal width.
func (b Bounds) SplitColumns(n int) (cols []Bounds) {
	width := b.Width() / float64(n)
	for i := 0; i < n; i++ {
		cols = append(cols, Bounds{
			Top:    b.Top,
			Bottom: b.Bottom,
			Left:   b.Left + float64(i)*width,
			Right:  b.Left + float64(i+1)*width,
		})
	}
	return cols
}
