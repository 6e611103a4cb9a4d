package image

import (
	"image"
	"image/color"
)

// ToStdImage converts the buffer to a standard library image.Image.
// Returns *image.Gray for Gray8 and *image.NRGBA (opaque) for RGB8.
func (b *ImageBuf) ToStdImage() image.Image {
	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.RowBytes(y))
		}
		return gray

	default:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			row := b.RowBytes(y)
			dstStart := y * nrgba.Stride
			for x := range b.width {
				srcOff := x * 3
				dstOff := dstStart + x*4
				nrgba.Pix[dstOff] = row[srcOff]
				nrgba.Pix[dstOff+1] = row[srcOff+1]
				nrgba.Pix[dstOff+2] = row[srcOff+2]
				nrgba.Pix[dstOff+3] = 255
			}
		}
		return nrgba
	}
}

// FromStdImage creates a buffer in the given format from a standard library
// image. Alpha is discarded; RGB8 to Gray8 uses the color.GrayModel weights.
func FromStdImage(img image.Image, format Format) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy(), format)
	if err != nil {
		return nil, err
	}

	// Fast paths
	switch src := img.(type) {
	case *image.Gray:
		if format == FormatGray8 {
			for y := range buf.height {
				start := y * src.Stride
				copy(buf.RowBytes(y), src.Pix[start:start+buf.width])
			}
			return buf, nil
		}
	case *image.NRGBA:
		if format == FormatRGB8 {
			for y := range buf.height {
				row := buf.RowBytes(y)
				start := y * src.Stride
				for x := range buf.width {
					copy(row[x*3:x*3+3], src.Pix[start+x*4:start+x*4+3])
				}
			}
			return buf, nil
		}
	}

	for y := range buf.height {
		row := buf.RowBytes(y)
		for x := range buf.width {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			if format == FormatGray8 {
				row[x] = color.GrayModel.Convert(c).(color.Gray).Y
				continue
			}
			n := color.NRGBAModel.Convert(c).(color.NRGBA)
			row[x*3], row[x*3+1], row[x*3+2] = n.R, n.G, n.B
		}
	}
	return buf, nil
}
