package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Scanlines outside this width range cannot be run-length encoded
const (
	minRLEWidth = 8
	maxRLEWidth = 0x7fff
)

// Longest run a single count byte can describe
const (
	maxRun     = 127
	maxLiteral = 128
	minRun     = 3
)

// SaveHDR writes img to path in Radiance HDR format
func SaveHDR(path string, img Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteHDR(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteHDR encodes img as a Radiance RGBE picture with run-length encoded scanlines.
// Negative components are written as 0, NaN pixels as black and values too large for
// the shared exponent as the brightest representable pixel.
func WriteHDR(w io.Writer, img Image) error {
	width, height := img.Size()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#?RADIANCE\n")
	fmt.Fprintf(bw, "# Made with go-spectral-pathtracer\n")
	fmt.Fprintf(bw, "FORMAT=32-bit_rle_rgbe\n\n")
	fmt.Fprintf(bw, "-Y %d +X %d\n", height, width)

	line := make([][4]byte, width)
	channel := make([]byte, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			line[x] = toRGBE(img.RGB(x, y))
		}

		if width < minRLEWidth || width > maxRLEWidth {
			for _, px := range line {
				if _, err := bw.Write(px[:]); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := bw.Write([]byte{2, 2, byte(width >> 8), byte(width & 0xff)}); err != nil {
			return err
		}
		for c := 0; c < 4; c++ {
			for x := range line {
				channel[x] = line[x][c]
			}
			if err := writeRLE(bw, channel); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// writeRLE encodes one channel of a scanline. Runs of at least minRun equal bytes are
// written as (128+count, value); everything else as (count, bytes...).
func writeRLE(w *bufio.Writer, data []byte) error {
	for i := 0; i < len(data); {
		run := 1
		for i+run < len(data) && run < maxRun && data[i+run] == data[i] {
			run++
		}
		if run >= minRun {
			if _, err := w.Write([]byte{byte(128 + run), data[i]}); err != nil {
				return err
			}
			i += run
			continue
		}

		// Literal block up to the next run worth encoding
		j := i
		for j < len(data) && j-i < maxLiteral {
			if j+2 < len(data) && data[j] == data[j+1] && data[j+1] == data[j+2] {
				break
			}
			j++
		}
		if err := w.WriteByte(byte(j - i)); err != nil {
			return err
		}
		if _, err := w.Write(data[i:j]); err != nil {
			return err
		}
		i = j
	}
	return nil
}

// toRGBE packs a colour into a shared-exponent pixel
func toRGBE(c mgl64.Vec3) [4]byte {
	r := math32.Max(float32(c[0]), 0)
	g := math32.Max(float32(c[1]), 0)
	b := math32.Max(float32(c[2]), 0)

	if math32.IsNaN(r) || math32.IsNaN(g) || math32.IsNaN(b) {
		return [4]byte{}
	}

	v := math32.Max(r, math32.Max(g, b))
	if v < 1e-32 {
		return [4]byte{}
	}
	if math32.IsInf(v, 1) {
		return [4]byte{255, 255, 255, 255}
	}

	frac, exp := math32.Frexp(v)
	if exp > 127 {
		return [4]byte{255, 255, 255, 255}
	}
	scale := frac * 256 / v
	return [4]byte{byte(r * scale), byte(g * scale), byte(b * scale), byte(exp + 128)}
}

// fromRGBE unpacks a shared-exponent pixel, reconstructing each channel at the centre
// of its quantisation step
func fromRGBE(p [4]byte) mgl64.Vec3 {
	if p[3] == 0 {
		return mgl64.Vec3{}
	}
	f := math32.Ldexp(1, int(p[3])-(128+8))
	return mgl64.Vec3{
		float64((float32(p[0]) + 0.5) * f),
		float64((float32(p[1]) + 0.5) * f),
		float64((float32(p[2]) + 0.5) * f),
	}
}

// ReadHDR decodes a Radiance RGBE picture in the standard -Y H +X W orientation. Flat
// and new-style run-length encoded scanlines are supported.
func ReadHDR(r io.Reader) (*Raster, error) {
	br := bufio.NewReader(r)

	magic, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if magic != "#?RADIANCE\n" && magic != "#?RGBE\n" {
		return nil, errors.New("not a Radiance HDR file")
	}

	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		if format, ok := strings.CutPrefix(line, "FORMAT="); ok && format != "32-bit_rle_rgbe" {
			return nil, fmt.Errorf("unsupported format %q", format)
		}
	}

	resolution, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read resolution: %w", err)
	}
	var width, height int
	if _, err := fmt.Sscanf(resolution, "-Y %d +X %d", &height, &width); err != nil {
		return nil, fmt.Errorf("unsupported resolution line %q: %w", strings.TrimSpace(resolution), err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}

	raster := NewRaster(width, height)
	line := make([][4]byte, width)
	for y := 0; y < height; y++ {
		if err := readScanline(br, line); err != nil {
			return nil, fmt.Errorf("scanline %d: %w", y, err)
		}
		for x, px := range line {
			raster.Pixels[y*width+x] = fromRGBE(px)
		}
	}
	return raster, nil
}

func readScanline(br *bufio.Reader, line [][4]byte) error {
	width := len(line)

	var first [4]byte
	if _, err := io.ReadFull(br, first[:]); err != nil {
		return err
	}

	rle := width >= minRLEWidth && width <= maxRLEWidth &&
		first[0] == 2 && first[1] == 2 && first[2]&0x80 == 0
	if !rle {
		line[0] = first
		for x := 1; x < width; x++ {
			if _, err := io.ReadFull(br, line[x][:]); err != nil {
				return err
			}
		}
		return nil
	}

	if encoded := int(first[2])<<8 | int(first[3]); encoded != width {
		return fmt.Errorf("scanline width %d does not match image width %d", encoded, width)
	}

	for c := 0; c < 4; c++ {
		for x := 0; x < width; {
			count, err := br.ReadByte()
			if err != nil {
				return err
			}
			if count > 128 {
				n := int(count) - 128
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				if x+n > width {
					return errors.New("run overflows scanline")
				}
				for ; n > 0; n-- {
					line[x][c] = value
					x++
				}
				continue
			}

			n := int(count)
			if n == 0 || x+n > width {
				return errors.New("bad literal length")
			}
			for ; n > 0; n-- {
				value, err := br.ReadByte()
				if err != nil {
					return err
				}
				line[x][c] = value
				x++
			}
		}
	}
	return nil
}
