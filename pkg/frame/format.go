// Package frame holds raw sensor frames and decodes them into RGB images.
package frame

import (
	"fmt"
	"strings"
)

// PixelFormat describes how the raw bytes of a frame map to pixels.
type PixelFormat int

const (
	// Unknown is a format the device reported that we have no tag for.
	Unknown PixelFormat = iota
	// RGB24 is packed 8-bit R, G, B (3 bytes per pixel).
	RGB24
	// IRGray8 is 8-bit infrared grayscale (1 byte per pixel).
	IRGray8
	// Bayer is the raw Bayer mosaic of the RGB sensor.
	Bayer
	// IR10Bit is 10-bit infrared stored in 16-bit words.
	IR10Bit
	// IR10BitPacked is 10-bit infrared packed bitwise.
	IR10BitPacked
	// YUVRaw is raw UYVY 4:2:2.
	YUVRaw
	// YUVRGB is the device's YUV-derived RGB mode.
	YUVRGB
)

var formatNames = map[PixelFormat]string{
	Unknown:       "UNKNOWN",
	RGB24:         "RGB24",
	IRGray8:       "IR_GRAY8",
	Bayer:         "BAYER",
	IR10Bit:       "IR_10BIT",
	IR10BitPacked: "IR_10BIT_PACKED",
	YUVRaw:        "YUV_RAW",
	YUVRGB:        "YUV_RGB",
}

// String returns the tag name of the format.
func (f PixelFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("PixelFormat(%d)", int(f))
}

// ParsePixelFormat parses a tag name as returned by String.
// Matching is case-insensitive and accepts "-" in place of "_".
func ParsePixelFormat(s string) (PixelFormat, error) {
	key := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
	for f, name := range formatNames {
		if name == key {
			return f, nil
		}
	}
	return Unknown, fmt.Errorf("unknown pixel format %q", s)
}

// BytesPerPixel returns the number of bytes one pixel occupies for
// decodable formats, and 0 for formats the decoder does not handle.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case RGB24:
		return 3
	case IRGray8:
		return 1
	default:
		return 0
	}
}

// Supported reports whether frames in this format decode to an image.
func (f PixelFormat) Supported() bool {
	return f.BytesPerPixel() > 0
}

// FormatFor returns the format to request from the sensor for the
// selected camera.
func FormatFor(useIR bool) PixelFormat {
	if useIR {
		return IRGray8
	}
	return RGB24
}
