package frame

import "testing"

func TestPixelFormat_StringRoundTrip(t *testing.T) {
	for f, name := range formatNames {
		if f.String() != name {
			t.Errorf("expected %q, got %q", name, f.String())
		}
		parsed, err := ParsePixelFormat(name)
		if err != nil {
			t.Fatalf("ParsePixelFormat(%q) failed: %v", name, err)
		}
		if parsed != f {
			t.Errorf("ParsePixelFormat(%q) = %v, want %v", name, parsed, f)
		}
	}
}

func TestParsePixelFormat_Lenient(t *testing.T) {
	f, err := ParsePixelFormat(" ir-gray8 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != IRGray8 {
		t.Errorf("expected IRGray8, got %v", f)
	}

	if _, err := ParsePixelFormat("jpeg"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPixelFormat_BytesPerPixel(t *testing.T) {
	tests := []struct {
		format PixelFormat
		want   int
	}{
		{RGB24, 3},
		{IRGray8, 1},
		{Bayer, 0},
		{IR10Bit, 0},
		{IR10BitPacked, 0},
		{YUVRaw, 0},
		{YUVRGB, 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
			if got := tt.format.Supported(); got != (tt.want > 0) {
				t.Errorf("Supported() = %v", got)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor(true) != IRGray8 {
		t.Error("expected IR camera to request IRGray8")
	}
	if FormatFor(false) != RGB24 {
		t.Error("expected RGB camera to request RGB24")
	}
}
