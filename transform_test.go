package bitmap

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func invert(p Pixel) Pixel {
	r, g, b, a := p.RGBA8()
	return RGBA8(255-r, 255-g, 255-b, a)
}

func TestMap_InvertBlackToWhite(t *testing.T) {
	b := mustNew(t, 2, 2)
	b.Fill(RGBA8(0, 0, 0, 255))

	out := b.Map(invert)

	for i, p := range out.All() {
		if p != RGBA8(255, 255, 255, 255) {
			t.Errorf("pixel %d = %v, want opaque white", i, p)
		}
	}
	for i, p := range b.All() {
		if p != RGBA8(0, 0, 0, 255) {
			t.Errorf("source pixel %d changed to %v", i, p)
		}
	}
}

func TestMap_Identity(t *testing.T) {
	b := mustDecode(t, mustImage(t, gradient(31, 7), 2))
	out := b.Map(func(p Pixel) Pixel { return p })
	if !out.Equal(b) {
		t.Error("identity Map differs from source")
	}
}

func TestMap_NonAliasing(t *testing.T) {
	b := mustNew(t, 3, 3)
	out := b.Map(func(p Pixel) Pixel { return p })

	_ = out.SetPixelAt(4, RGBA8(1, 2, 3, 4))
	if p, _ := b.PixelAt(4); p != (Pixel{}) {
		t.Errorf("writing the result changed the source: %v", p)
	}

	_ = b.SetPixelAt(0, RGBA8(5, 6, 7, 8))
	if p, _ := out.PixelAt(0); p != (Pixel{}) {
		t.Errorf("writing the source changed the result: %v", p)
	}
}

func TestMapPosition(t *testing.T) {
	b := mustNew(t, 4, 3)
	out := b.MapPosition(func(pos int, _ Pixel) Pixel {
		return RGBA8(uint8(pos), 0, 0, 255)
	})
	for i, p := range out.All() {
		if r, _, _, _ := p.RGBA8(); int(r) != i {
			t.Errorf("pixel %d red = %d, want %d", i, r, i)
		}
	}
}

func TestMapCoordinate(t *testing.T) {
	// Non-square so that row/column mix-ups show.
	b := mustNew(t, 5, 3)
	out := b.MapCoordinate(func(row, col int, _ Pixel) Pixel {
		return RGBA8(uint8(row), uint8(col), 0, 255)
	})
	for i, p := range out.All() {
		r, g, _, _ := p.RGBA8()
		if int(r) != i/5 || int(g) != i%5 {
			t.Errorf("pixel %d = (row %d, column %d), want (%d, %d)", i, r, g, i/5, i%5)
		}
	}
	if out.Width() != 5 || out.Height() != 3 || out.Scale() != b.Scale() {
		t.Errorf("result shape %v, want %v", out, b)
	}
}

func TestTransform_VisitsEachPositionOnce(t *testing.T) {
	tests := []struct {
		name string
		opts []MapOption
	}{
		{"serial", []MapOption{WithWorkers(1)}},
		{"parallel", []MapOption{WithWorkers(7), WithParallelThreshold(0)}},
		{"default", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustNew(t, 129, 131)
			visits := make([]atomic.Int32, b.Len())

			_, err := b.Transform(func(c Coord, p Pixel) (Pixel, error) {
				visits[c.Position].Add(1)
				if c.Row != c.Position/b.Width() || c.Column != c.Position%b.Width() {
					return p, fmt.Errorf("bad coord %+v", c)
				}
				return p, nil
			}, tt.opts...)
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			for i := range visits {
				if n := visits[i].Load(); n != 1 {
					t.Fatalf("position %d visited %d times", i, n)
				}
			}
		})
	}
}

func TestTransform_SerialParallelAgree(t *testing.T) {
	b := mustDecode(t, mustImage(t, gradient(200, 150), 1))
	fn := func(row, col int, p Pixel) Pixel {
		r, g, bl, a := p.RGBA8()
		return RGBA8(g, bl^uint8(row), r^uint8(col), a)
	}

	serial := b.MapCoordinate(fn, WithWorkers(1))
	par := b.MapCoordinate(fn, WithWorkers(16), WithParallelThreshold(1))

	if !serial.Equal(par) {
		t.Error("serial and parallel results differ")
	}
}

var errBoom = errors.New("boom")

func TestTransform_Error(t *testing.T) {
	for _, opts := range [][]MapOption{
		{WithWorkers(1)},
		{WithWorkers(8), WithParallelThreshold(0)},
	} {
		b := mustNew(t, 64, 64)
		out, err := b.Transform(func(c Coord, p Pixel) (Pixel, error) {
			if c.Position == 1000 || c.Position == 3000 {
				return p, errBoom
			}
			return p, nil
		}, opts...)

		if !errors.Is(err, errBoom) {
			t.Fatalf("Transform() error = %v, want errBoom", err)
		}
		if out != nil {
			t.Error("Transform() returned a bitmap with an error")
		}
		want := "bitmap: transform at position 1000 (row 15, column 40): boom"
		if err.Error() != want {
			t.Errorf("error = %q, want %q", err.Error(), want)
		}
	}
}

func TestTransform_Nil(t *testing.T) {
	b := mustNew(t, 1, 1)
	if _, err := b.Transform(nil); !errors.Is(err, ErrNilTransform) {
		t.Errorf("Transform(nil) error = %v, want ErrNilTransform", err)
	}
}

// TestTransform_ZeroValue tests that an empty bitmap maps to an empty bitmap
// without calling fn.
func TestTransform_ZeroValue(t *testing.T) {
	var b PixelBitmap
	calls := 0
	out, err := b.Transform(func(_ Coord, p Pixel) (Pixel, error) {
		calls++
		return p, nil
	})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if out.Len() != 0 || calls != 0 {
		t.Errorf("Len() = %d, calls = %d, want 0 and 0", out.Len(), calls)
	}

	if m := b.MapCoordinate(func(_, _ int, p Pixel) Pixel { return p }); m.Len() != 0 {
		t.Errorf("MapCoordinate() Len() = %d, want 0", m.Len())
	}
}

func TestTransform_PanicPropagates(t *testing.T) {
	b := mustNew(t, 100, 100)
	defer func() {
		if r := recover(); r != "bad pixel" {
			t.Errorf("recover() = %v, want \"bad pixel\"", r)
		}
	}()
	b.Map(func(p Pixel) Pixel {
		panic("bad pixel")
	}, WithWorkers(4), WithParallelThreshold(0))
	t.Error("Map should have panicked")
}

func BenchmarkMap(b *testing.B) {
	for _, size := range []int{64, 512, 2048} {
		bm, err := New(size, size, 1)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("%dx%d/serial", size, size), func(b *testing.B) {
			for b.Loop() {
				bm.Map(invert, WithWorkers(1))
			}
		})
		b.Run(fmt.Sprintf("%dx%d/parallel", size, size), func(b *testing.B) {
			for b.Loop() {
				bm.Map(invert)
			}
		})
	}
}
