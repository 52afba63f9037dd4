package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output image encoding
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

var ErrUnknownFormat = errors.New("unknown image format")

var contentTypes = map[Format]string{
	FormatPPM:  "image/x-portable-pixmap",
	FormatPNG:  "image/png",
	FormatBMP:  "image/bmp",
	FormatTIFF: "image/tiff",
}

// ParseFormat converts a format name such as "png" or ".tif" into a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "", "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromName infers the format from an image file name's extension.
// Names without an extension are written as PPM.
func FormatFromName(name string) (Format, error) {
	return ParseFormat(filepath.Ext(name))
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if ct, ok := contentTypes[f]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension of the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// WithExtension replaces the extension of name with the format's extension
func WithExtension(name string, format Format) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + format.Extension()
}
