// Package kernel defines the boundary between image containers and the code
// doing the per-pixel work. Every kernel takes raw rows described by a byte
// slice, a stride and a size; callers validate formats and sizes before a
// kernel is invoked, so kernels do not return errors.
package kernel

import (
	"errors"
	"fmt"

	"github.com/simdkit/simd/pkg/cpu"
	"github.com/simdkit/simd/pkg/pixel"
)

var (
	// ErrUnsupported is returned when a library can't create a context for the
	// requested parameters.
	ErrUnsupported = errors.New("not supported by kernel library")
	// ErrInvalidArgument is returned for malformed sizes, alignments or
	// parameter slices.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Kernels is the set of pixel kernels. Argument order is
// (src, srcStride, width, height, dst, dstStride[, alpha][, yuv]).
type Kernels interface {
	Copy(src []byte, srcStride, width, height, pixelSize int, dst []byte, dstStride int)
	FillPixel(dst []byte, stride, width, height int, pixel []byte)

	GrayToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	GrayToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8)
	BgrToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	BgrToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8)
	BgrToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	BgraToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	BgraToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	BgraToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	BgraToRgba(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	RgbToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8)
	RgbToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	RgbaToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int)

	BgrToLab(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	GrayToY(src []byte, srcStride, width, height int, dst []byte, dstStride int)
	YToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int)

	// InterleaveUv merges planar U and V of size width x height into uv.
	InterleaveUv(u []byte, uStride int, v []byte, vStride int, width, height int, uv []byte, uvStride int)
	// DeinterleaveUv splits a width x height uv plane into planar U and V.
	DeinterleaveUv(uv []byte, uvStride, width, height int, u []byte, uStride int, v []byte, vStride int)

	Yuv420pToBgr(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType)
	Yuv420pToBgra(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, alpha uint8, yuv pixel.YuvType)
	Yuv420pToRgb(y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType)
	BgrToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, yuv pixel.YuvType)
	BgraToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, u []byte, uStride int, v []byte, vStride int, yuv pixel.YuvType)

	AbsGradientSaturatedSum(src []byte, srcStride, width, height int, dst []byte, dstStride int)

	// SynetSetInput writes an 8-bit image into a float32 tensor, scaling
	// every channel from [0, 255] into [lower[c], upper[c]].
	SynetSetInput(src []byte, width, height, stride int, format pixel.Format, lower, upper []float32, dst []float32, channels int, tensor TensorFormat)

	Crc32(src []byte) uint32
	Crc32c(src []byte) uint32
}

// Allocator provides aligned row storage.
type Allocator interface {
	Allocate(size, align int) ([]byte, error)
	// Free returns memory obtained from Allocate. Each buffer is freed once.
	Free(buf []byte)
	Align(size, align int) int
	Alignment() int
}

// Resizer is a prepared resize context.
type Resizer interface {
	Run(src []byte, srcStride int, dst []byte, dstStride int)
	// Release frees the context. Calling it more than once is a no-op.
	Release()
}

// WarpAffiner is a prepared warp-affine context.
type WarpAffiner interface {
	Run(src, dst []byte)
	// Release frees the context. Calling it more than once is a no-op.
	Release()
}

// Library is a complete kernel implementation.
type Library interface {
	Kernels
	Allocator

	NewResizer(p ResizeParams) (Resizer, error)
	NewWarpAffine(p WarpAffineParams) (WarpAffiner, error)

	CpuInfo(kind cpu.Info) int64
	CpuDesc(kind cpu.Desc) string

	Name() string
	Version() string
	Threads() int
	FastMode() bool
}

// ResizeChannel is the element type of resized images.
type ResizeChannel = pixel.ResizeChannel

const (
	ResizeChannelByte  = pixel.ResizeChannelByte
	ResizeChannelShort = pixel.ResizeChannelShort
	ResizeChannelFloat = pixel.ResizeChannelFloat
)

// ResizeMethod selects the interpolation of a resizer.
type ResizeMethod int

const (
	ResizeMethodNearest ResizeMethod = iota
	ResizeMethodNearestPytorch
	ResizeMethodBilinear
	ResizeMethodBilinearCaffe
	ResizeMethodBilinearPytorch
	ResizeMethodBicubic
	ResizeMethodArea
	ResizeMethodAreaFast
)

var resizeMethodNames = [...]string{
	"Nearest", "NearestPytorch", "Bilinear", "BilinearCaffe",
	"BilinearPytorch", "Bicubic", "Area", "AreaFast",
}

func (m ResizeMethod) String() string {
	if m < 0 || int(m) >= len(resizeMethodNames) {
		return fmt.Sprintf("ResizeMethod(%d)", int(m))
	}
	return resizeMethodNames[m]
}

// ResizeParams describes a resize context.
type ResizeParams struct {
	SrcWidth, SrcHeight int
	DstWidth, DstHeight int
	Channels            int
	Type                ResizeChannel
	Method              ResizeMethod
}

func (p ResizeParams) validate() error {
	if p.SrcWidth <= 0 || p.SrcHeight <= 0 || p.DstWidth <= 0 || p.DstHeight <= 0 {
		return fmt.Errorf("resize %dx%d -> %dx%d: %w", p.SrcWidth, p.SrcHeight, p.DstWidth, p.DstHeight, ErrInvalidArgument)
	}
	if p.Channels < 1 || p.Channels > 4 {
		return fmt.Errorf("resize with %d channels: %w", p.Channels, ErrInvalidArgument)
	}
	return nil
}

// WarpAffineFlags configures a warp-affine context.
type WarpAffineFlags int

const (
	WarpAffineChannelByte WarpAffineFlags = 0
	WarpAffineChannelMask WarpAffineFlags = 1

	WarpAffineInterpNearest  WarpAffineFlags = 0
	WarpAffineInterpBilinear WarpAffineFlags = 2
	WarpAffineInterpMask     WarpAffineFlags = 2

	WarpAffineBorderConstant    WarpAffineFlags = 0
	WarpAffineBorderTransparent WarpAffineFlags = 4
	WarpAffineBorderMask        WarpAffineFlags = 4

	// WarpAffineDefault is byte channels, bilinear interpolation and a
	// constant border.
	WarpAffineDefault = WarpAffineChannelByte | WarpAffineInterpBilinear | WarpAffineBorderConstant
)

// WarpAffineParams describes a warp-affine context. Mat is the 2x3 forward
// transform from source to destination coordinates in row-major order.
type WarpAffineParams struct {
	SrcWidth, SrcHeight, SrcStride int
	DstWidth, DstHeight, DstStride int
	Channels                       int
	Mat                            [6]float32
	Flags                          WarpAffineFlags
	Border                         []byte
}

func (p WarpAffineParams) validate() error {
	if p.SrcWidth <= 0 || p.SrcHeight <= 0 || p.DstWidth <= 0 || p.DstHeight <= 0 {
		return fmt.Errorf("warp affine %dx%d -> %dx%d: %w", p.SrcWidth, p.SrcHeight, p.DstWidth, p.DstHeight, ErrInvalidArgument)
	}
	if p.Channels < 1 || p.Channels > 4 {
		return fmt.Errorf("warp affine with %d channels: %w", p.Channels, ErrInvalidArgument)
	}
	if p.SrcStride < p.SrcWidth*p.Channels || p.DstStride < p.DstWidth*p.Channels {
		return fmt.Errorf("warp affine stride smaller than row: %w", ErrInvalidArgument)
	}
	if len(p.Border) != 0 && len(p.Border) != p.Channels {
		return fmt.Errorf("warp affine border of %d values for %d channels: %w", len(p.Border), p.Channels, ErrInvalidArgument)
	}
	return nil
}

// TensorFormat is the memory order of a tensor.
type TensorFormat int

const (
	TensorFormatUnknown TensorFormat = -1
	TensorFormatNchw    TensorFormat = 0
	TensorFormatNhwc    TensorFormat = 1
)

func (f TensorFormat) String() string {
	switch f {
	case TensorFormatNchw:
		return "Nchw"
	case TensorFormatNhwc:
		return "Nhwc"
	}
	return "Unknown"
}

// TensorData is the element type tag of a tensor. SynetSetInput always
// writes TensorDataFP32.
type TensorData int

// The native header assigns 0 to both FP32 and INT32. The tags are kept
// numerically identical so values exchanged with the native library keep
// their meaning; code that needs to tell them apart must carry the element
// type separately.
const (
	TensorDataUnknown TensorData = -1
	TensorDataFP32    TensorData = 0
	TensorDataINT32   TensorData = 0
	TensorDataINT8    TensorData = 1
	TensorDataUINT8   TensorData = 2
	TensorDataINT64   TensorData = 3
	TensorDataUINT64  TensorData = 4
	TensorDataBOOL    TensorData = 5
	TensorDataBF16    TensorData = 6
	TensorDataFP16    TensorData = 7
)

var tensorDataNames = [...]string{"FP32", "INT8", "UINT8", "INT64", "UINT64", "BOOL", "BF16", "FP16"}

// String names the tag. Tag 0 prints as FP32.
func (d TensorData) String() string {
	if d < 0 || int(d) >= len(tensorDataNames) {
		return "Unknown"
	}
	return tensorDataNames[d]
}

// Size returns the element size in bytes, 0 for Unknown. Tag 0 is 4 bytes
// for both FP32 and INT32.
func (d TensorData) Size() int {
	switch d {
	case TensorDataFP32:
		return 4
	case TensorDataINT8, TensorDataUINT8, TensorDataBOOL:
		return 1
	case TensorDataINT64, TensorDataUINT64:
		return 8
	case TensorDataBF16, TensorDataFP16:
		return 2
	}
	return 0
}
