package frame

import (
	"bytes"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
)

// countDecodes replaces the decoder with a counting wrapper for the
// duration of the test.
func countDecodes(t *testing.T) *atomic.Int64 {
	t.Helper()
	var n atomic.Int64
	orig := decodeFunc
	decodeFunc = func(mode Mode, data []byte) (*image.RGBA, bool, error) {
		n.Add(1)
		return orig(mode, data)
	}
	t.Cleanup(func() { decodeFunc = orig })
	return &n
}

func TestDecode_RGB24Example(t *testing.T) {
	f := New(Mode{Width: 2, Height: 1, Format: RGB24}, []byte{255, 0, 0, 0, 255, 0}, 0)

	img, ok, err := f.Image()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected an image")
	}
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("expected 2x1 bounds, got %v", img.Bounds())
	}

	want := []byte{255, 0, 0, 255, 0, 255, 0, 255}
	if !bytes.Equal(img.Pix, want) {
		t.Errorf("expected pixels %v, got %v", want, img.Pix)
	}
}

func TestDecode_RGB24PixelLayout(t *testing.T) {
	const w, h = 5, 3
	data := make([]byte, w*h*3)
	for i := range data {
		data[i] = byte(i * 7)
	}

	img, ok, err := Decode(Mode{Width: w, Height: h, Format: RGB24}, data)
	if err != nil || !ok {
		t.Fatalf("Decode failed: ok=%v err=%v", ok, err)
	}
	if img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("expected %dx%d, got %v", w, h, img.Bounds())
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := 3 * (y*w + x)
			got := img.RGBAAt(x, y)
			if got.R != data[i] || got.G != data[i+1] || got.B != data[i+2] || got.A != 255 {
				t.Errorf("pixel (%d,%d): expected (%d,%d,%d), got %v", x, y, data[i], data[i+1], data[i+2], got)
			}
		}
	}
}

func TestDecode_IRGray8(t *testing.T) {
	const w, h = 4, 2
	data := []byte{0, 10, 20, 30, 40, 50, 60, 255}

	img, ok, err := Decode(Mode{Width: w, Height: h, Format: IRGray8}, data)
	if err != nil || !ok {
		t.Fatalf("Decode failed: ok=%v err=%v", ok, err)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g := data[y*w+x]
			got := img.RGBAAt(x, y)
			if got.R != g || got.G != g || got.B != g {
				t.Errorf("pixel (%d,%d): expected gray %d, got %v", x, y, g, got)
			}
		}
	}
}

func TestDecode_IgnoresTrailingBytes(t *testing.T) {
	img, ok, err := Decode(Mode{Width: 1, Height: 1, Format: IRGray8}, []byte{9, 1, 2, 3})
	if err != nil || !ok {
		t.Fatalf("Decode failed: ok=%v err=%v", ok, err)
	}
	if got := img.RGBAAt(0, 0).R; got != 9 {
		t.Errorf("expected 9, got %d", got)
	}
}

func TestDecode_Truncated(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		data []byte
	}{
		{"rgb short by one", Mode{Width: 2, Height: 2, Format: RGB24}, make([]byte, 11)},
		{"gray empty", Mode{Width: 3, Height: 1, Format: IRGray8}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, ok, err := Decode(tt.mode, tt.data)
			if !errors.Is(err, ErrTruncatedFrame) {
				t.Fatalf("expected ErrTruncatedFrame, got %v", err)
			}
			if ok || img != nil {
				t.Error("expected no image for truncated frame")
			}
		})
	}
}

func TestDecode_InvalidMode(t *testing.T) {
	_, ok, err := Decode(Mode{Width: 0, Height: 4, Format: RGB24}, make([]byte, 12))
	if !errors.Is(err, ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
	if ok {
		t.Error("expected ok to be false")
	}
}

func TestDecode_OverflowingMode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
	}{
		{"product overflows int", Mode{Width: 1 << 31, Height: 1 << 31, Format: RGB24}},
		{"width too large", Mode{Width: MaxDimension + 1, Height: 1, Format: IRGray8}},
		{"height too large", Mode{Width: 1, Height: MaxDimension + 1, Format: RGB24}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.mode, []byte{1, 2, 3}, 0)
			img, ok, err := f.Image()
			if !errors.Is(err, ErrInvalidMode) {
				t.Fatalf("expected ErrInvalidMode, got %v", err)
			}
			if ok || img != nil {
				t.Error("expected no image")
			}
		})
	}
}

func TestMode_ValidateAcceptsLargestFrame(t *testing.T) {
	m := Mode{Width: MaxDimension, Height: MaxDimension, Format: RGB24}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := m.FrameSize(), MaxDimension*MaxDimension*3; got != want {
		t.Errorf("expected %d, got %d", want, got)
	}
}

func TestDecode_UnsupportedFormats(t *testing.T) {
	formats := []PixelFormat{Bayer, IR10Bit, IR10BitPacked, YUVRaw, YUVRGB, Unknown}
	inputs := [][]byte{nil, {}, {1, 2, 3}, make([]byte, 640*480*2)}

	for _, f := range formats {
		for _, data := range inputs {
			img, ok, err := Decode(Mode{Width: 640, Height: 480, Format: f}, data)
			if err != nil {
				t.Errorf("%s with %d bytes: expected no error, got %v", f, len(data), err)
			}
			if ok || img != nil {
				t.Errorf("%s with %d bytes: expected no image", f, len(data))
			}
		}
	}
}

func TestRawFrame_ImageIsMemoized(t *testing.T) {
	n := countDecodes(t)

	f := New(Mode{Width: 2, Height: 2, Format: IRGray8}, []byte{1, 2, 3, 4}, 42)

	first, ok1, err1 := f.Image()
	second, ok2, err2 := f.Image()

	if err1 != nil || err2 != nil || !ok1 || !ok2 {
		t.Fatalf("unexpected results: %v %v %v %v", ok1, err1, ok2, err2)
	}
	if first != second {
		t.Error("expected the cached image to be returned")
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("expected bit-identical images")
	}
	if got := n.Load(); got != 1 {
		t.Errorf("expected 1 decode, got %d", got)
	}
}

func TestRawFrame_ErrorIsMemoized(t *testing.T) {
	n := countDecodes(t)

	f := New(Mode{Width: 2, Height: 2, Format: RGB24}, []byte{1}, 0)
	_, _, err1 := f.Image()
	_, _, err2 := f.Image()

	if !errors.Is(err1, ErrTruncatedFrame) || !errors.Is(err2, ErrTruncatedFrame) {
		t.Fatalf("expected ErrTruncatedFrame twice, got %v / %v", err1, err2)
	}
	if got := n.Load(); got != 1 {
		t.Errorf("expected 1 decode, got %d", got)
	}
}

func TestRawFrame_ConcurrentImage(t *testing.T) {
	n := countDecodes(t)

	f := New(Mode{Width: 8, Height: 8, Format: RGB24}, make([]byte, 8*8*3), 0)

	var wg sync.WaitGroup
	results := make([]*image.RGBA, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			img, _, _ := f.Image()
			results[i] = img
		}(i)
	}
	wg.Wait()

	for i, img := range results {
		if img != results[0] {
			t.Errorf("goroutine %d got a different image", i)
		}
	}
	if got := n.Load(); got != 1 {
		t.Errorf("expected 1 decode, got %d", got)
	}
}

func TestRawFrame_Accessors(t *testing.T) {
	mode := Mode{Width: 1, Height: 1, Format: IRGray8}
	f := New(mode, []byte{7}, 1234)

	if f.Mode() != mode {
		t.Errorf("expected mode %+v, got %+v", mode, f.Mode())
	}
	if f.Timestamp() != 1234 {
		t.Errorf("expected timestamp 1234, got %d", f.Timestamp())
	}
	if !bytes.Equal(f.Data(), []byte{7}) {
		t.Errorf("unexpected data %v", f.Data())
	}
}
