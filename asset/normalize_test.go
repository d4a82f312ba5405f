package asset

import (
	"image"
	"image/color"
	"testing"
)

func TestNormalize(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.Pix = []uint8{0x00, 0x7f}

	gray16 := image.NewGray16(image.Rect(0, 0, 2, 1))
	gray16.SetGray16(0, 0, color.Gray16{Y: 0xabcd})
	gray16.SetGray16(1, 0, color.Gray16{Y: 0x00ff})

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.NRGBA{}, color.NRGBA{R: 9, G: 8, B: 7, A: 0xff}})
	pal.Pix = []uint8{1, 0}

	n64 := image.NewNRGBA64(image.Rect(0, 0, 3, 1))
	n64.SetNRGBA64(0, 0, color.NRGBA64{R: 0x1234, G: 0x5678, B: 0x9abc, A: 0x01ff})
	n64.SetNRGBA64(1, 0, color.NRGBA64{R: 0xffff, A: 0x00ff})
	n64.SetNRGBA64(2, 0, color.NRGBA64{R: 0xffff, A: 0x0080})

	r64 := image.NewRGBA64(image.Rect(0, 0, 2, 1))
	r64.SetRGBA64(0, 0, color.RGBA64{R: 0x4000, A: 0x8000})
	r64.SetRGBA64(1, 0, color.RGBA64{B: 0x00ff, A: 0x00ff})

	rgba := image.NewRGBA(image.Rect(0, 0, 3, 1))
	rgba.SetRGBA(0, 0, color.RGBA{R: 0x40, A: 0x80})
	rgba.SetRGBA(1, 0, color.RGBA{G: 0x11, A: 0xff})

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio420)
	for i := range ycc.Cb {
		ycc.Cb[i], ycc.Cr[i] = 0x80, 0x80
	}

	// sub-image with a non-zero origin
	big := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	big.SetNRGBA(2, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	sub := big.SubImage(image.Rect(2, 2, 4, 4))

	alpha := image.NewAlpha(image.Rect(0, 0, 1, 1))
	alpha.SetAlpha(0, 0, color.Alpha{A: 0xff})

	tests := []struct {
		name string
		src  image.Image
		want []color.NRGBA
	}{
		{"gray", gray, []color.NRGBA{{A: 0xff}, {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}}},
		{"gray16", gray16, []color.NRGBA{{R: 0xab, G: 0xab, B: 0xab, A: 0xff}, {R: 1, G: 1, B: 1, A: 0xff}}},
		{"paletted", pal, []color.NRGBA{{R: 9, G: 8, B: 7, A: 0xff}, {}}},
		{"nrgba64", n64, []color.NRGBA{{R: 0x12, G: 0x56, B: 0x9a, A: 0x02}, {R: 0xff, A: 0x01}, {R: 0xff}}},
		{"rgba64", r64, []color.NRGBA{{R: 0x7f, A: 0x80}, {B: 0xff, A: 0x01}}},
		{"rgba", rgba, []color.NRGBA{{R: 0x7f, A: 0x80}, {G: 0x11, A: 0xff}, {}}},
		{"ycbcr", ycc, []color.NRGBA{{A: 0xff}, {A: 0xff}, {A: 0xff}, {A: 0xff}}},
		{"subimage", sub, []color.NRGBA{{}, {}, {R: 1, G: 2, B: 3, A: 4}, {}}},
		{"alpha", alpha, []color.NRGBA{{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.src)
			if got.Rect.Min != (image.Point{}) {
				t.Fatalf("origin = %v, want (0,0)", got.Rect.Min)
			}
			if len(got.Pix) != len(tt.want)*4 {
				t.Fatalf("len(Pix) = %d, want %d", len(got.Pix), len(tt.want)*4)
			}
			w := got.Rect.Dx()
			for i, c := range tt.want {
				if p := got.NRGBAAt(i%w, i/w); p != c {
					t.Errorf("pixel %d = %v, want %v", i, p, c)
				}
			}
		})
	}
}

func TestNormalizeCopies(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.Pix[3] = 0xff
	dst := normalize(src)
	src.Pix[3] = 0
	if dst.Pix[3] != 0xff {
		t.Error("normalize aliased the source buffer")
	}
}
