package frame

// Format is the FourCC-style name of a raw capture buffer layout.
type Format string

const (
	// YUV Formats

	// FormatI420 https://www.fourcc.org/pixel-format/yuv-i420/
	FormatI420 Format = "I420"
	// FormatNV12 https://www.fourcc.org/pixel-format/yuv-nv12/
	FormatNV12 Format = "NV12"
	// FormatNV21 https://www.fourcc.org/pixel-format/yuv-nv21/
	FormatNV21 Format = "NV21"
	// FormatYUY2 https://www.fourcc.org/pixel-format/yuv-yuy2/
	FormatYUY2 Format = "YUY2"
	// FormatUYVY https://www.fourcc.org/pixel-format/yuv-uyvy/
	FormatUYVY Format = "UYVY"

	// RGB Formats

	// FormatRGB24 is packed R, G, B.
	FormatRGB24 Format = "RGB24"
	// FormatBGRA is packed B, G, R, A.
	FormatBGRA Format = "BGRA"
	// FormatARGB is packed A, R, G, B.
	FormatARGB Format = "ARGB"
	// FormatGREY is 8-bit luminance.
	FormatGREY Format = "GREY"

	// Compressed Formats

	// FormatMJPEG https://www.fourcc.org/mjpg/
	FormatMJPEG Format = "MJPEG"
)

// YUV aliases

// FormatYUYV is an alias of FormatYUY2
const FormatYUYV = FormatYUY2
