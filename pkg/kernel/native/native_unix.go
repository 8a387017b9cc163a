//go:build linux || darwin

package native

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/google/uuid"
	"github.com/pion/logging"

	simdlogging "github.com/simdkit/simd/internal/logging"
	"github.com/simdkit/simd/pkg/cpu"
	"github.com/simdkit/simd/pkg/kernel"
	"github.com/simdkit/simd/pkg/pixel"
)

type (
	pixelFunc      func(src unsafe.Pointer, width, height, srcStride uintptr, dst unsafe.Pointer, dstStride uintptr)
	pixelAlphaFunc func(src unsafe.Pointer, width, height, srcStride uintptr, dst unsafe.Pointer, dstStride uintptr, alpha uint8)
	strideFirst    func(src unsafe.Pointer, srcStride, width, height uintptr, dst unsafe.Pointer, dstStride uintptr)
	yuvToPacked    func(y unsafe.Pointer, yStride uintptr, u unsafe.Pointer, uStride uintptr, v unsafe.Pointer, vStride uintptr, width, height uintptr, dst unsafe.Pointer, dstStride uintptr, yuvType int32)
	packedToYuv    func(src unsafe.Pointer, srcStride, width, height uintptr, y unsafe.Pointer, yStride uintptr, u unsafe.Pointer, uStride uintptr, v unsafe.Pointer, vStride uintptr, yuvType int32)
)

type symbols struct {
	version     func() string
	cpuInfo     func(kind int32) uintptr
	cpuDesc     func(kind int32) string
	allocate    func(size, align uintptr) unsafe.Pointer
	free        func(ptr unsafe.Pointer)
	align       func(size, align uintptr) uintptr
	alignment   func() uintptr
	release     func(ctx unsafe.Pointer)
	setThreads  func(n uintptr)
	setFastMode func(fast int32)
	crc32       func(src unsafe.Pointer, size uintptr) uint32
	crc32c      func(src unsafe.Pointer, size uintptr) uint32

	copy      func(src unsafe.Pointer, srcStride, width, height, pixelSize uintptr, dst unsafe.Pointer, dstStride uintptr)
	fillPixel func(dst unsafe.Pointer, stride, width, height uintptr, pixel unsafe.Pointer, pixelSize uintptr)

	bgraToBgr, bgraToGray, bgraToRgb, bgraToRgba pixelFunc
	bgrToGray, bgrToRgb, grayToBgr               pixelFunc
	rgbToGray, rgbaToGray                        pixelFunc
	bgrToBgra, grayToBgra, rgbToBgra             pixelAlphaFunc

	bgrToLab, yToGray, grayToY, absGradientSaturatedSum strideFirst

	interleaveUv   func(u unsafe.Pointer, uStride uintptr, v unsafe.Pointer, vStride uintptr, width, height uintptr, uv unsafe.Pointer, uvStride uintptr)
	deinterleaveUv func(uv unsafe.Pointer, uvStride, width, height uintptr, u unsafe.Pointer, uStride uintptr, v unsafe.Pointer, vStride uintptr)

	yuv420pToBgr, yuv420pToRgb   yuvToPacked
	yuv420pToBgra                func(y unsafe.Pointer, yStride uintptr, u unsafe.Pointer, uStride uintptr, v unsafe.Pointer, vStride uintptr, width, height uintptr, dst unsafe.Pointer, dstStride uintptr, alpha uint8, yuvType int32)
	bgrToYuv420p, bgraToYuv420p packedToYuv

	synetSetInput func(src unsafe.Pointer, width, height, stride uintptr, srcFormat int32, lower, upper, dst unsafe.Pointer, channels uintptr, format int32)

	resizerInit    func(srcX, srcY, dstX, dstY, channels uintptr, typ, method int32) unsafe.Pointer
	resizerRun     func(ctx, src unsafe.Pointer, srcStride uintptr, dst unsafe.Pointer, dstStride uintptr)
	warpAffineInit func(srcW, srcH, srcS, dstW, dstH, dstS, channels uintptr, mat unsafe.Pointer, flags int32, border unsafe.Pointer) unsafe.Pointer
	warpAffineRun  func(ctx, src, dst unsafe.Pointer)
}

// Library is a kernel.Library backed by the Simd shared library.
type Library struct {
	handle  uintptr
	path    string
	threads int
	fast    bool
	log     logging.LeveledLogger
	sym     symbols

	closeOnce sync.Once
}

// Open loads the shared library at path and binds every kernel symbol.
// An empty path means DefaultPath.
func Open(path string, opts Options) (*Library, error) {
	if path == "" {
		path = DefaultPath()
	}

	l := &Library{path: path, threads: max(opts.Threads, 1), fast: opts.FastMode}
	l.log = simdlogging.NewLogger("simd/native", opts.LoggerFactory)

	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrUnavailable)
	}
	l.handle = handle

	if missing := l.bind(); len(missing) > 0 {
		_ = purego.Dlclose(handle)
		return nil, fmt.Errorf("%s lacks %s: %w", path, strings.Join(missing, ", "), ErrUnavailable)
	}

	l.sym.setThreads(uintptr(l.threads))
	fast := int32(0)
	if l.fast {
		fast = 1
	}
	l.sym.setFastMode(fast)

	l.log.Debugf("loaded %s version %s, threads=%d fast=%v", path, l.sym.version(), l.threads, l.fast)
	return l, nil
}

// bind resolves all symbols and returns the names of the missing ones.
func (l *Library) bind() []string {
	var missing []string
	register := func(fptr any, name string) {
		sym, err := purego.Dlsym(l.handle, name)
		if err != nil {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(fptr, sym)
	}

	s := &l.sym
	register(&s.version, "SimdVersion")
	register(&s.cpuInfo, "SimdCpuInfo")
	register(&s.cpuDesc, "SimdCpuDesc")
	register(&s.allocate, "SimdAllocate")
	register(&s.free, "SimdFree")
	register(&s.align, "SimdAlign")
	register(&s.alignment, "SimdAlignment")
	register(&s.release, "SimdRelease")
	register(&s.setThreads, "SimdSetThreadNumber")
	register(&s.setFastMode, "SimdSetFastMode")
	register(&s.crc32, "SimdCrc32")
	register(&s.crc32c, "SimdCrc32c")

	register(&s.copy, "SimdCopy")
	register(&s.fillPixel, "SimdFillPixel")

	register(&s.bgraToBgr, "SimdBgraToBgr")
	register(&s.bgraToGray, "SimdBgraToGray")
	register(&s.bgraToRgb, "SimdBgraToRgb")
	register(&s.bgraToRgba, "SimdBgraToRgba")
	register(&s.bgrToGray, "SimdBgrToGray")
	register(&s.bgrToRgb, "SimdBgrToRgb")
	register(&s.grayToBgr, "SimdGrayToBgr")
	register(&s.rgbToGray, "SimdRgbToGray")
	register(&s.rgbaToGray, "SimdRgbaToGray")
	register(&s.bgrToBgra, "SimdBgrToBgra")
	register(&s.grayToBgra, "SimdGrayToBgra")
	register(&s.rgbToBgra, "SimdRgbToBgra")

	register(&s.bgrToLab, "SimdBgrToLab")
	register(&s.yToGray, "SimdYToGray")
	register(&s.grayToY, "SimdGrayToY")
	register(&s.absGradientSaturatedSum, "SimdAbsGradientSaturatedSum")

	register(&s.interleaveUv, "SimdInterleaveUv")
	register(&s.deinterleaveUv, "SimdDeinterleaveUv")
	register(&s.yuv420pToBgr, "SimdYuv420pToBgrV2")
	register(&s.yuv420pToBgra, "SimdYuv420pToBgraV2")
	register(&s.yuv420pToRgb, "SimdYuv420pToRgbV2")
	register(&s.bgrToYuv420p, "SimdBgrToYuv420pV2")
	register(&s.bgraToYuv420p, "SimdBgraToYuv420pV2")

	register(&s.synetSetInput, "SimdSynetSetInput")
	register(&s.resizerInit, "SimdResizerInit")
	register(&s.resizerRun, "SimdResizerRun")
	register(&s.warpAffineInit, "SimdWarpAffineInit")
	register(&s.warpAffineRun, "SimdWarpAffineRun")

	for _, name := range missing {
		l.log.Warnf("symbol %s not found in %s", name, l.path)
	}
	return missing
}

// Close unloads the library. Buffers and contexts obtained from it must not
// be used afterwards.
func (l *Library) Close() error {
	var err error
	l.closeOnce.Do(func() {
		err = purego.Dlclose(l.handle)
	})
	return err
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

func fptr(f []float32) unsafe.Pointer {
	if len(f) == 0 {
		return nil
	}
	return unsafe.Pointer(&f[0])
}

func u(v int) uintptr { return uintptr(v) }

func (l *Library) Name() string    { return "native:" + l.path }
func (l *Library) Version() string { return l.sym.version() }
func (l *Library) Threads() int    { return l.threads }
func (l *Library) FastMode() bool  { return l.fast }
func (l *Library) Alignment() int  { return int(l.sym.alignment()) }
func (l *Library) Align(size, align int) int {
	return int(l.sym.align(u(size), u(align)))
}

func (l *Library) CpuInfo(kind cpu.Info) int64  { return int64(l.sym.cpuInfo(int32(kind))) }
func (l *Library) CpuDesc(kind cpu.Desc) string { return l.sym.cpuDesc(int32(kind)) }

func (l *Library) Crc32(src []byte) uint32  { return l.sym.crc32(ptr(src), u(len(src))) }
func (l *Library) Crc32c(src []byte) uint32 { return l.sym.crc32c(ptr(src), u(len(src))) }

func (l *Library) Allocate(size, align int) ([]byte, error) {
	if size <= 0 || align <= 0 || align&(align-1) != 0 {
		return nil, fmt.Errorf("allocate %d bytes aligned to %d: %w", size, align, kernel.ErrInvalidArgument)
	}
	p := l.sym.allocate(u(size), u(align))
	if p == nil {
		return nil, fmt.Errorf("native allocation of %d bytes failed: %w", size, ErrUnavailable)
	}
	return unsafe.Slice((*byte)(p), size), nil
}

func (l *Library) Free(buf []byte) {
	if len(buf) == 0 {
		return
	}
	l.sym.free(unsafe.Pointer(&buf[0]))
}

func (l *Library) Copy(src []byte, srcStride, width, height, pixelSize int, dst []byte, dstStride int) {
	l.sym.copy(ptr(src), u(srcStride), u(width), u(height), u(pixelSize), ptr(dst), u(dstStride))
}

func (l *Library) FillPixel(dst []byte, stride, width, height int, pixel []byte) {
	l.sym.fillPixel(ptr(dst), u(stride), u(width), u(height), ptr(pixel), u(len(pixel)))
}

func (l *Library) GrayToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.grayToBgr(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) GrayToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	l.sym.grayToBgra(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride), alpha)
}

func (l *Library) BgrToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgrToGray(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgrToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	l.sym.bgrToBgra(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride), alpha)
}

func (l *Library) BgrToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgrToRgb(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgraToBgr(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgraToBgr(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgraToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgraToGray(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgraToRgb(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgraToRgb(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgraToRgba(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgraToRgba(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) RgbToBgra(src []byte, srcStride, width, height int, dst []byte, dstStride int, alpha uint8) {
	l.sym.rgbToBgra(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride), alpha)
}

func (l *Library) RgbToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.rgbToGray(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) RgbaToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.rgbaToGray(ptr(src), u(width), u(height), u(srcStride), ptr(dst), u(dstStride))
}

func (l *Library) BgrToLab(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.bgrToLab(ptr(src), u(srcStride), u(width), u(height), ptr(dst), u(dstStride))
}

func (l *Library) GrayToY(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.grayToY(ptr(src), u(srcStride), u(width), u(height), ptr(dst), u(dstStride))
}

func (l *Library) YToGray(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.yToGray(ptr(src), u(srcStride), u(width), u(height), ptr(dst), u(dstStride))
}

func (l *Library) AbsGradientSaturatedSum(src []byte, srcStride, width, height int, dst []byte, dstStride int) {
	l.sym.absGradientSaturatedSum(ptr(src), u(srcStride), u(width), u(height), ptr(dst), u(dstStride))
}

func (l *Library) InterleaveUv(uPlane []byte, uStride int, vPlane []byte, vStride int, width, height int, uv []byte, uvStride int) {
	l.sym.interleaveUv(ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), u(width), u(height), ptr(uv), u(uvStride))
}

func (l *Library) DeinterleaveUv(uv []byte, uvStride, width, height int, uPlane []byte, uStride int, vPlane []byte, vStride int) {
	l.sym.deinterleaveUv(ptr(uv), u(uvStride), u(width), u(height), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride))
}

func (l *Library) Yuv420pToBgr(y []byte, yStride int, uPlane []byte, uStride int, vPlane []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType) {
	l.sym.yuv420pToBgr(ptr(y), u(yStride), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), u(width), u(height), ptr(dst), u(dstStride), int32(yuv))
}

func (l *Library) Yuv420pToBgra(y []byte, yStride int, uPlane []byte, uStride int, vPlane []byte, vStride int, width, height int, dst []byte, dstStride int, alpha uint8, yuv pixel.YuvType) {
	l.sym.yuv420pToBgra(ptr(y), u(yStride), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), u(width), u(height), ptr(dst), u(dstStride), alpha, int32(yuv))
}

func (l *Library) Yuv420pToRgb(y []byte, yStride int, uPlane []byte, uStride int, vPlane []byte, vStride int, width, height int, dst []byte, dstStride int, yuv pixel.YuvType) {
	l.sym.yuv420pToRgb(ptr(y), u(yStride), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), u(width), u(height), ptr(dst), u(dstStride), int32(yuv))
}

func (l *Library) BgrToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, uPlane []byte, uStride int, vPlane []byte, vStride int, yuv pixel.YuvType) {
	l.sym.bgrToYuv420p(ptr(src), u(srcStride), u(width), u(height), ptr(y), u(yStride), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), int32(yuv))
}

func (l *Library) BgraToYuv420p(src []byte, srcStride, width, height int, y []byte, yStride int, uPlane []byte, uStride int, vPlane []byte, vStride int, yuv pixel.YuvType) {
	l.sym.bgraToYuv420p(ptr(src), u(srcStride), u(width), u(height), ptr(y), u(yStride), ptr(uPlane), u(uStride), ptr(vPlane), u(vStride), int32(yuv))
}

func (l *Library) SynetSetInput(src []byte, width, height, stride int, format pixel.Format, lower, upper []float32, dst []float32, channels int, tensor kernel.TensorFormat) {
	l.sym.synetSetInput(ptr(src), u(width), u(height), u(stride), int32(format), fptr(lower), fptr(upper), fptr(dst), u(channels), int32(tensor))
}

type handle struct {
	id   uuid.UUID
	kind string
	lib  *Library
	ctx  unsafe.Pointer
	once sync.Once
}

func (h *handle) Release() {
	h.once.Do(func() {
		h.lib.sym.release(h.ctx)
		h.lib.log.Debugf("released %s %s", h.kind, h.id)
		h.ctx = nil
	})
}

type resizer struct {
	*handle
}

func (l *Library) NewResizer(p kernel.ResizeParams) (kernel.Resizer, error) {
	ctx := l.sym.resizerInit(u(p.SrcWidth), u(p.SrcHeight), u(p.DstWidth), u(p.DstHeight), u(p.Channels), int32(p.Type), int32(p.Method))
	if ctx == nil {
		return nil, fmt.Errorf("resizer %+v: %w", p, kernel.ErrUnsupported)
	}
	h := &handle{id: uuid.New(), kind: "resizer", lib: l, ctx: ctx}
	l.log.Debugf("created resizer %s", h.id)
	return &resizer{h}, nil
}

func (r *resizer) Run(src []byte, srcStride int, dst []byte, dstStride int) {
	if r.ctx == nil {
		return
	}
	r.lib.sym.resizerRun(r.ctx, ptr(src), u(srcStride), ptr(dst), u(dstStride))
}

type warpAffine struct {
	*handle
	// mat and border are kept alive for the context, which references them.
	mat    [6]float32
	border []byte
}

func (l *Library) NewWarpAffine(p kernel.WarpAffineParams) (kernel.WarpAffiner, error) {
	w := &warpAffine{mat: p.Mat, border: append([]byte(nil), p.Border...)}
	ctx := l.sym.warpAffineInit(u(p.SrcWidth), u(p.SrcHeight), u(p.SrcStride), u(p.DstWidth), u(p.DstHeight), u(p.DstStride),
		u(p.Channels), unsafe.Pointer(&w.mat[0]), int32(p.Flags), ptr(w.border))
	if ctx == nil {
		return nil, fmt.Errorf("warp affine %dx%d -> %dx%d: %w", p.SrcWidth, p.SrcHeight, p.DstWidth, p.DstHeight, kernel.ErrUnsupported)
	}
	w.handle = &handle{id: uuid.New(), kind: "warp affine", lib: l, ctx: ctx}
	l.log.Debugf("created warp affine %s", w.id)
	return w, nil
}

func (w *warpAffine) Run(src, dst []byte) {
	if w.ctx == nil {
		return
	}
	w.lib.sym.warpAffineRun(w.ctx, ptr(src), ptr(dst))
}

var _ kernel.Library = (*Library)(nil)
