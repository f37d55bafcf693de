package webcamsource

import (
	"github.com/blackjack/webcam"

	"github.com/user/kinectlapse/pkg/frame"
)

func fourcc(code string) webcam.PixelFormat {
	return webcam.PixelFormat(uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24)
}

func fourccString(p webcam.PixelFormat) string {
	return string([]byte{byte(p), byte(p >> 8), byte(p >> 16), byte(p >> 24)})
}

// requested maps the formats we can decode to the fourcc asked of the driver.
var requested = map[frame.PixelFormat]webcam.PixelFormat{
	frame.RGB24:   fourcc("RGB3"),
	frame.IRGray8: fourcc("GREY"),
}

// granted maps whatever the driver settles on back to a frame format.
// The gspca Kinect driver offers Bayer and UYVY on the RGB node and
// GREY/Y10B on the IR node.
var granted = map[webcam.PixelFormat]frame.PixelFormat{
	fourcc("RGB3"): frame.RGB24,
	fourcc("GREY"): frame.IRGray8,
	fourcc("BA81"): frame.Bayer,
	fourcc("GRBG"): frame.Bayer,
	fourcc("RGGB"): frame.Bayer,
	fourcc("Y10 "): frame.IR10Bit,
	fourcc("Y10B"): frame.IR10BitPacked,
	fourcc("UYVY"): frame.YUVRaw,
	fourcc("YUYV"): frame.YUVRaw,
}

func formatOf(p webcam.PixelFormat) frame.PixelFormat {
	if f, ok := granted[p]; ok {
		return f
	}
	return frame.Unknown
}
