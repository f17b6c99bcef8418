package graphics

// FloatRect is an axis-aligned rectangle given by its top-left corner and size
type FloatRect struct {
	Left, Top, Width, Height float32
}

// IntRect is an axis-aligned rectangle given by its top-left corner and size
type IntRect struct {
	Left, Top, Width, Height int32
}

func (r FloatRect) Contains(x, y float32) bool {
	return x >= r.Left && x < r.Left+r.Width &&
		y >= r.Top && y < r.Top+r.Height
}

func (r IntRect) Contains(x, y int32) bool {
	return x >= r.Left && x < r.Left+r.Width &&
		y >= r.Top && y < r.Top+r.Height
}
