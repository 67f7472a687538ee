package canvas

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/mazetrace/internal/core"
)

func mustNew(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return c
}

func TestNewDefaults(t *testing.T) {
	c := mustNew(t, 4, 3)

	if c.TilesW() != 4 || c.TilesH() != 3 || c.Len() != 12 {
		t.Errorf("size = %dx%d (%d), expected 4x3 (12)", c.TilesW(), c.TilesH(), c.Len())
	}
	if c.FadeRate() != DefaultFadeRate {
		t.Errorf("FadeRate() = %v, expected %v", c.FadeRate(), DefaultFadeRate)
	}
	inst, _ := c.At(2, 1)
	if inst.High != defaultHighRGB || inst.Low != defaultLowRGB || inst.Strength != 0 {
		t.Errorf("At(2, 1) = %+v, expected default grey range at strength 0", inst)
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		opts []Option
		want error
	}{
		{"zero width", 0, 4, nil, ErrInvalidSize},
		{"negative height", 4, -1, nil, ErrInvalidSize},
		{"negative rate", 2, 2, []Option{WithFadeRate(-1)}, ErrInvalidRate},
		{"nan rate", 2, 2, []Option{WithFadeRate(float32(math.NaN()))}, ErrInvalidRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.w, tt.h, tt.opts...); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, expected %v", err, tt.want)
			}
		})
	}
}

func TestInstancesOrder(t *testing.T) {
	const w, h = 5, 3
	c := mustNew(t, w, h)

	// Encode each coordinate into the red channel so ordering is visible.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			col, err := core.NewColor(float32(x)/10, float32(y)/10, 0)
			if err != nil {
				t.Fatal(err)
			}
			if err := c.Paint(x, y, col, core.Black); err != nil {
				t.Fatalf("Paint(%d, %d) error = %v", x, y, err)
			}
		}
	}

	buf := c.Instances()
	if len(buf) != w*h {
		t.Fatalf("len(Instances()) = %d, expected %d", len(buf), w*h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			got := buf[x+y*w].High
			if got[0] != float32(x)/10 || got[1] != float32(y)/10 {
				t.Errorf("Instances()[%d] = %v, expected tile (%d,%d)", x+y*w, got, x, y)
			}
		}
	}
	if len(c.ColorRanges()) != w*h || len(c.Strengths()) != w*h {
		t.Error("struct-of-arrays views should match the tile count")
	}
}

func TestPaintOutOfBounds(t *testing.T) {
	c := mustNew(t, 5, 5)
	c.Advance(0.5)
	before := c.Instances()

	err := c.Paint(10, 10, core.Red, core.Blue)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("Paint(10, 10) error = %v, expected ErrOutOfBounds", err)
	}
	var oob *OutOfBoundsError
	if !errors.As(err, &oob) || oob.X != 10 || oob.Y != 10 || oob.Width != 5 {
		t.Errorf("Paint(10, 10) error = %#v, expected *OutOfBoundsError for (10,10) on 5x5", err)
	}

	after := c.Instances()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("tile %d changed after failed paint: %+v -> %+v", i, before[i], after[i])
		}
	}

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if err := c.Paint(p[0], p[1], core.Red, core.Blue); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Paint(%d, %d) error = %v, expected ErrOutOfBounds", p[0], p[1], err)
		}
	}
	if _, err := c.At(5, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("At(5, 0) error = %v, expected ErrOutOfBounds", err)
	}
}

func TestPaintResetsStrength(t *testing.T) {
	c := mustNew(t, 2, 2)
	c.Advance(1)

	if err := c.Paint(1, 0, core.Red, core.Blue); err != nil {
		t.Fatal(err)
	}
	got, _ := c.At(1, 0)
	if got.Strength != 0 || got.High != core.Red.RGB() || got.Low != core.Blue.RGB() {
		t.Errorf("At(1, 0) = %+v, expected fresh red/blue", got)
	}
	other, _ := c.At(0, 0)
	if other.Strength == 0 {
		t.Error("unpainted tile should keep its fade")
	}
}

func TestAdvanceZeroIsIdempotent(t *testing.T) {
	c := mustNew(t, 3, 3)
	c.Advance(0.25)
	_ = c.Paint(1, 1, core.White, core.Black)
	before := c.Instances()

	c.Advance(0)
	c.Advance(-1)
	c.Advance(float32(math.NaN()))

	after := c.Instances()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("tile %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestAdvanceMonotonicAndSaturates(t *testing.T) {
	c := mustNew(t, 2, 1, WithFadeRate(1))

	prev := float32(0)
	for i := 0; i < 30; i++ {
		c.Advance(0.1)
		got, _ := c.At(0, 0)
		if got.Strength < prev {
			t.Fatalf("step %d: strength %v decreased from %v", i, got.Strength, prev)
		}
		if got.Strength > 1 {
			t.Fatalf("step %d: strength %v above 1", i, got.Strength)
		}
		prev = got.Strength
	}
	if prev != 1 {
		t.Errorf("strength after 3s at rate 1 = %v, expected 1", prev)
	}
}

func TestWithColors(t *testing.T) {
	c := mustNew(t, 1, 1, WithColors(core.Yellow, core.Black))
	got, _ := c.At(0, 0)
	if got.High != core.Yellow.RGB() || got.Low != core.Black.RGB() {
		t.Errorf("At(0, 0) = %+v, expected yellow/black", got)
	}
}

// decodeColorRange reads one ColorRangeSize record back.
func decodeColorRange(b []byte) ColorRange {
	var r ColorRange
	for i := 0; i < 3; i++ {
		r.High[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		r.Low[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[12+i*4:]))
	}
	return r
}

func TestByteEncodings(t *testing.T) {
	c := mustNew(t, 2, 1)
	_ = c.Paint(1, 0, core.Red, core.Blue)
	c.Advance(0.5)

	colors := c.AppendBytes(nil)
	if len(colors) != 2*ColorRangeSize {
		t.Fatalf("len(AppendBytes()) = %d, expected %d", len(colors), 2*ColorRangeSize)
	}
	if got := decodeColorRange(colors[ColorRangeSize:]); got != c.ColorRanges()[1] {
		t.Errorf("decodeColorRange() = %+v, expected %+v", got, c.ColorRanges()[1])
	}

	// High red channel of tile 1 sits at the start of its record.
	first := math.Float32frombits(binary.LittleEndian.Uint32(colors[ColorRangeSize:]))
	if first != 1 {
		t.Errorf("tile 1 high.r = %v, expected 1", first)
	}

	strengths := c.StrengthBytes(nil)
	if len(strengths) != 2*StrengthSize {
		t.Fatalf("len(StrengthBytes()) = %d, expected %d", len(strengths), 2*StrengthSize)
	}
	want := binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(c.Strengths()[1])))
	if !bytes.Equal(strengths[StrengthSize:], want) {
		t.Errorf("StrengthBytes()[1] = %v, expected %v", strengths[StrengthSize:], want)
	}

	// Appending keeps what is already in dst.
	prefixed := c.StrengthBytes([]byte{0xAA})
	if prefixed[0] != 0xAA || len(prefixed) != 1+2*StrengthSize {
		t.Errorf("StrengthBytes(prefix) = %v, expected prefix kept", prefixed)
	}
}
