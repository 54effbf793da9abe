// Package sjpg encodes and decodes segmented JPEG (SJPG) containers.
//
// SJPG is the preview-image format understood by the Monoprice Mini Delta v2
// firmware (an LVGL format). Decoding a normal JPEG requires the whole
// uncompressed image to fit in device RAM; an SJPG container instead bundles
// independently decodable JPEG-compressed horizontal strips behind a small
// header, so the firmware only ever holds one strip at a time.
//
// The container layout is: a 7-byte ASCII magic tag "_SJPG__", the version
// string "V1.00" delimited by single null bytes, then width, height, strip
// count and fragment height as 2-byte little-endian integers, one 2-byte
// little-endian byte length per strip in strip order, and finally the
// concatenated strip payloads.
package sjpg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
)

const (
	// Magic is the 7-byte tag opening every container.
	Magic = "_SJPG__"
	// FormatVersion is the version string written after the magic tag,
	// delimited by single null bytes on both sides.
	FormatVersion = "V1.00"

	// DefaultQuality is the JPEG quality used when Options leaves it unset.
	DefaultQuality = 30
	// DefaultFragmentHeight is the maximum strip height in pixels.
	DefaultFragmentHeight = 16
)

const (
	versionFieldSize = len(FormatVersion) + 2
	fixedHeaderSize  = len(Magic) + versionFieldSize + 8

	// All counted quantities are stored in 2-byte fields.
	maxFieldValue = 0xFFFF
)

var (
	// ErrBadMagic reports data that does not start with the SJPG tag.
	ErrBadMagic = errors.New("sjpg: bad magic tag")
	// ErrTruncated reports a container shorter than its header demands.
	ErrTruncated = errors.New("sjpg: truncated container")
)

// Options controls strip compression.
type Options struct {
	// Quality is the JPEG quality, 1-100. Zero selects DefaultQuality.
	Quality int
	// FragmentHeight is the maximum strip height in pixels. Zero selects
	// DefaultFragmentHeight.
	FragmentHeight int
}

func (o Options) withDefaults() Options {
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	if o.FragmentHeight == 0 {
		o.FragmentHeight = DefaultFragmentHeight
	}
	return o
}

// Container is a parsed SJPG image.
type Container struct {
	Version        string
	Width          int
	Height         int
	FragmentHeight int
	Strips         [][]byte
}

// StripLengths returns the byte length of each strip in order.
func (c *Container) StripLengths() []int {
	lengths := make([]int, len(c.Strips))
	for i, s := range c.Strips {
		lengths[i] = len(s)
	}
	return lengths
}

// PayloadSize returns the total byte length of all strips.
func (c *Container) PayloadSize() int {
	total := 0
	for _, s := range c.Strips {
		total += len(s)
	}
	return total
}

// StripRows returns the pixel row count of strip i. Every strip spans the
// fragment height except the last, which spans the remainder.
func (c *Container) StripRows(i int) int {
	if i == len(c.Strips)-1 {
		if rem := c.Height % c.FragmentHeight; rem != 0 {
			return rem
		}
	}
	return c.FragmentHeight
}

// Encode compresses img into an SJPG container. The image is split into
// horizontal strips of at most FragmentHeight rows (the last strip takes the
// remainder) and each strip is JPEG-compressed independently at the given
// quality. Either a complete container or an error is returned; no partial
// output is ever produced.
func Encode(img image.Image, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, fmt.Errorf("sjpg: quality out of range: %d", opts.Quality)
	}
	if opts.FragmentHeight < 1 {
		return nil, fmt.Errorf("sjpg: invalid fragment height: %d", opts.FragmentHeight)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("sjpg: empty image %dx%d", width, height)
	}
	if width > maxFieldValue || height > maxFieldValue {
		return nil, fmt.Errorf("sjpg: image %dx%d exceeds 2-byte dimension fields", width, height)
	}

	parts := (height + opts.FragmentHeight - 1) / opts.FragmentHeight
	lengths := make([]int, 0, parts)
	var payload bytes.Buffer

	for i := 0; i < parts; i++ {
		top := i * opts.FragmentHeight
		rows := opts.FragmentHeight
		if top+rows > height {
			rows = height - top
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, cropStrip(img, top, rows), &jpeg.Options{Quality: opts.Quality}); err != nil {
			return nil, fmt.Errorf("sjpg: compress strip %d: %w", i, err)
		}
		if buf.Len() > maxFieldValue {
			return nil, fmt.Errorf("sjpg: strip %d overflows 2-byte length field: %d bytes", i, buf.Len())
		}
		lengths = append(lengths, buf.Len())
		payload.Write(buf.Bytes())
	}

	out := make([]byte, 0, fixedHeaderSize+2*parts+payload.Len())
	out = append(out, Magic...)
	out = append(out, 0)
	out = append(out, FormatVersion...)
	out = append(out, 0)
	out = binary.LittleEndian.AppendUint16(out, uint16(width))
	out = binary.LittleEndian.AppendUint16(out, uint16(height))
	out = binary.LittleEndian.AppendUint16(out, uint16(parts))
	out = binary.LittleEndian.AppendUint16(out, uint16(opts.FragmentHeight))
	for _, n := range lengths {
		out = binary.LittleEndian.AppendUint16(out, uint16(n))
	}
	return append(out, payload.Bytes()...), nil
}

// Decode parses an SJPG container and validates its layout invariants: magic
// tag, null-delimited version field, and declared strip lengths summing to
// the payload size.
func Decode(data []byte) (*Container, error) {
	if len(data) < fixedHeaderSize {
		return nil, ErrTruncated
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, ErrBadMagic
	}

	off := len(Magic)
	if data[off] != 0 || data[off+versionFieldSize-1] != 0 {
		return nil, fmt.Errorf("sjpg: malformed version field")
	}
	version := string(data[off+1 : off+versionFieldSize-1])
	off += versionFieldSize

	width := int(binary.LittleEndian.Uint16(data[off:]))
	height := int(binary.LittleEndian.Uint16(data[off+2:]))
	parts := int(binary.LittleEndian.Uint16(data[off+4:]))
	fragmentHeight := int(binary.LittleEndian.Uint16(data[off+6:]))
	off += 8

	if parts < 1 || fragmentHeight < 1 {
		return nil, fmt.Errorf("sjpg: invalid header: %d strips of %d px", parts, fragmentHeight)
	}
	if len(data) < off+2*parts {
		return nil, ErrTruncated
	}

	lengths := make([]int, parts)
	total := 0
	for i := range lengths {
		lengths[i] = int(binary.LittleEndian.Uint16(data[off:]))
		total += lengths[i]
		off += 2
	}
	if len(data)-off != total {
		return nil, fmt.Errorf("sjpg: declared strip lengths sum to %d bytes, payload has %d", total, len(data)-off)
	}

	c := &Container{
		Version:        version,
		Width:          width,
		Height:         height,
		FragmentHeight: fragmentHeight,
		Strips:         make([][]byte, parts),
	}
	for i, n := range lengths {
		c.Strips[i] = data[off : off+n]
		off += n
	}
	return c, nil
}

// subImager is satisfied by all the stdlib raster image types.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropStrip returns the full-width slice of img starting rows pixels below
// the top edge. Width is never split; only height is chunked.
func cropStrip(img image.Image, top, rows int) image.Image {
	b := img.Bounds()
	r := image.Rect(b.Min.X, b.Min.Y+top, b.Max.X, b.Min.Y+top+rows)
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
