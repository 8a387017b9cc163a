package pixel

import "fmt"

// YuvType is the colorimetric standard used to convert between YUV and RGB.
type YuvType int

const (
	YuvUnknown YuvType = -1
	// YuvBt601 is ITU-R BT.601, limited range. It is the default of YUV frames.
	YuvBt601 YuvType = 0
	// YuvBt709 is ITU-R BT.709, limited range.
	YuvBt709 YuvType = 1
	// YuvBt2020 is ITU-R BT.2020, limited range.
	YuvBt2020 YuvType = 2
	// YuvTrect871 is T-REC-T.871 (JPEG), full range.
	YuvTrect871 YuvType = 3

	// YuvFullRange is an alias of YuvTrect871.
	YuvFullRange = YuvTrect871
)

func (t YuvType) String() string {
	switch t {
	case YuvUnknown:
		return "Unknown"
	case YuvBt601:
		return "Bt601"
	case YuvBt709:
		return "Bt709"
	case YuvBt2020:
		return "Bt2020"
	case YuvTrect871:
		return "Trect871"
	}
	return fmt.Sprintf("YuvType(%d)", int(t))
}

// Valid reports whether t names a concrete standard.
func (t YuvType) Valid() bool {
	return t >= YuvBt601 && t <= YuvTrect871
}

// IsFullRange reports whether t uses the full 0..255 range for Y and UV.
func (t YuvType) IsFullRange() bool {
	return t == YuvTrect871
}

// Coefficients returns the red and blue luma weights of t.
// Unknown and invalid types fall back to BT.601.
func (t YuvType) Coefficients() (kr, kb float64, fullRange bool) {
	switch t {
	case YuvBt709:
		return 0.2126, 0.0722, false
	case YuvBt2020:
		return 0.2627, 0.0593, false
	case YuvTrect871:
		return 0.299, 0.114, true
	}
	return 0.299, 0.114, false
}
