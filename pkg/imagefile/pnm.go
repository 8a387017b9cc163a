package imagefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/simdkit/simd/pkg/pixel"
)

func encodePnm(w io.Writer, r Raster, f File) error {
	magic := map[File]string{PgmTxt: "P2", PpmTxt: "P3", PgmBin: "P5", PpmBin: "P6"}[f]
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, r.Width, r.Height)

	text := f == PgmTxt || f == PpmTxt
	for y := 0; y < r.Height; y++ {
		row := r.row(y)
		if !text {
			bw.Write(row)
			continue
		}
		for i, v := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(v)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// pnmReader tokenizes netpbm headers and text samples, skipping comments.
type pnmReader struct {
	r *bufio.Reader
}

func (p *pnmReader) token() (string, error) {
	var tok []byte
	for {
		c, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := p.r.ReadString('\n'); err != nil {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func (p *pnmReader) int() (int, error) {
	tok, err := p.token()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("bad netpbm value %q", tok)
	}
	return v, nil
}

func decodePnm(br *bufio.Reader) (Raster, error) {
	p := &pnmReader{r: br}
	magic, err := p.token()
	if err != nil {
		return Raster{}, err
	}

	var format pixel.Format
	var text bool
	switch magic {
	case "P2", "P5":
		format, text = pixel.FormatGray8, magic == "P2"
	case "P3", "P6":
		format, text = pixel.FormatRgb24, magic == "P3"
	default:
		return Raster{}, fmt.Errorf("netpbm %s: %w", magic, ErrUnknownFile)
	}

	var dims [3]int
	for i := range dims {
		if dims[i], err = p.int(); err != nil {
			return Raster{}, fmt.Errorf("netpbm header: %w", err)
		}
	}
	width, height, maxval := dims[0], dims[1], dims[2]
	if maxval == 0 || maxval > 255 {
		return Raster{}, fmt.Errorf("netpbm maxval %d: %w", maxval, pixel.ErrUnsupportedFormat)
	}

	size, err := pnmSize(format, width, height)
	if err != nil {
		return Raster{}, err
	}

	// Samples are appended as they are read so a truncated file never
	// allocates the size its header claims.
	pix := make([]byte, 0, min(size, 1<<16))
	if text {
		for i := 0; i < size; i++ {
			v, err := p.int()
			if err != nil {
				return Raster{}, fmt.Errorf("netpbm sample %d: %w", i, err)
			}
			pix = append(pix, scaleSample(v, maxval))
		}
	} else {
		// One whitespace byte separates the header from binary samples, the
		// tokenizer consumed it already.
		buf := bytes.NewBuffer(pix)
		if _, err := buf.ReadFrom(io.LimitReader(br, int64(size))); err != nil {
			return Raster{}, fmt.Errorf("netpbm samples: %w", err)
		}
		if pix = buf.Bytes(); len(pix) < size {
			return Raster{}, fmt.Errorf("netpbm samples: %d of %d bytes: %w", len(pix), size, io.ErrUnexpectedEOF)
		}
		if maxval != 255 {
			for i, v := range pix {
				pix[i] = scaleSample(int(v), maxval)
			}
		}
	}
	return Raster{Format: format, Width: width, Height: height, Stride: format.RowSize(width), Pix: pix}, nil
}

// maxPnmSamples bounds the sample count a netpbm header may declare.
const maxPnmSamples = math.MaxInt32

// pnmSize returns the number of samples of a width x height raster.
func pnmSize(format pixel.Format, width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("netpbm size %dx%d: %w", width, height, pixel.ErrUnsupportedFormat)
	}
	row := format.ChannelCount()
	if width > maxPnmSamples/row || height > maxPnmSamples/(width*row) {
		return 0, fmt.Errorf("netpbm size %dx%d too large: %w", width, height, pixel.ErrUnsupportedFormat)
	}
	return width * row * height, nil
}

func scaleSample(v, maxval int) byte {
	if v >= maxval {
		return 0xff
	}
	return byte((v*255 + maxval/2) / maxval)
}
