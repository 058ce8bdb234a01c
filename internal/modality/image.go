package modality

// Image is a 2D single-precision intensity array with values in [0,1],
// stored row-major. Images are never mutated after synthesis.
type Image struct {
	Rows int
	Cols int
	Pix  []float32
}

// At returns the intensity at (row, col).
func (img *Image) At(row, col int) float32 {
	return img.Pix[row*img.Cols+col]
}

// compose blends foreground and background through the anatomy mask,
// clips to [0,1] and converts to single precision.
func compose(res Resolution, mask []bool, fg, bg []float64) *Image {
	pix := make([]float32, res.Rows*res.Cols)
	for i := range pix {
		v := bg[i]
		if mask[i] {
			v = fg[i]
		}
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		pix[i] = float32(v)
	}
	return &Image{Rows: res.Rows, Cols: res.Cols, Pix: pix}
}
