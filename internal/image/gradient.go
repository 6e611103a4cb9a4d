package image

// Gradient returns a Gray8 buffer holding a horizontal black-to-white ramp.
// Column x has the value round(255 * x / (width-1)); a single column is black.
func Gradient(width, height int) (*ImageBuf, error) {
	buf, err := NewImageBuf(width, height, FormatGray8)
	if err != nil {
		return nil, err
	}
	row := buf.RowBytes(0)
	if width > 1 {
		for x := range row {
			row[x] = ClampByte(255 * float64(x) / float64(width-1))
		}
	}
	for y := 1; y < height; y++ {
		copy(buf.RowBytes(y), row)
	}
	return buf, nil
}
