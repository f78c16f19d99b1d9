package valueobjects

import (
	"image"
	"image/color"
)

// RGBRaster is a packed width*height*3 buffer of 8-bit channels.
// Alpha is dropped, not composited.
type RGBRaster struct {
	width  int
	height int
	pix    []uint8
}

func NewRGBRaster(src image.Image) *RGBRaster {
	b := src.Bounds()
	r := &RGBRaster{
		width:  b.Dx(),
		height: b.Dy(),
		pix:    make([]uint8, b.Dx()*b.Dy()*3),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			r.pix[i] = c.R
			r.pix[i+1] = c.G
			r.pix[i+2] = c.B
			i += 3
		}
	}

	return r
}

func (r *RGBRaster) Width() int {
	return r.width
}

func (r *RGBRaster) Height() int {
	return r.height
}

func (r *RGBRaster) Pix() []uint8 {
	return r.pix
}

func (r *RGBRaster) ColorModel() color.Model {
	return color.RGBAModel
}

func (r *RGBRaster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

func (r *RGBRaster) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return color.RGBA{}
	}
	i := (y*r.width + x) * 3
	return color.RGBA{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: 0xff}
}
