package output

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// testImage is a 2x2 image: red, green on top; blue, white below
func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, testImage()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n255 255 255\n"
	if buf.String() != expected {
		t.Errorf("Unexpected PPM output:\n%q\nwant\n%q", buf.String(), expected)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatPPM, false},
		{"ppm", FormatPPM, false},
		{".PNG", FormatPNG, false},
		{"bmp", FormatBMP, false},
		{"tif", FormatTIFF, false},
		{"tiff", FormatTIFF, false},
		{"jpeg", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("Expected ErrUnknownFormat, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatFromName(t *testing.T) {
	if f, err := FormatFromName("scenes/out/simple.ppm"); err != nil || f != FormatPPM {
		t.Errorf("Expected ppm, got %q (%v)", f, err)
	}
	if f, err := FormatFromName("render.png"); err != nil || f != FormatPNG {
		t.Errorf("Expected png, got %q (%v)", f, err)
	}
	if f, err := FormatFromName("noextension"); err != nil || f != FormatPPM {
		t.Errorf("Expected ppm for a name without extension, got %q (%v)", f, err)
	}
	if _, err := FormatFromName("photo.jpg"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestWithExtension(t *testing.T) {
	if got := WithExtension("simple.ppm", FormatPNG); got != "simple.png" {
		t.Errorf("Expected simple.png, got %s", got)
	}
	if got := WithExtension("noext", FormatBMP); got != "noext.bmp" {
		t.Errorf("Expected noext.bmp, got %s", got)
	}
}

func TestEncode_RoundTripsPixels(t *testing.T) {
	decoders := map[Format]func(io.Reader) (image.Image, error){
		FormatPNG:  png.Decode,
		FormatBMP:  bmp.Decode,
		FormatTIFF: tiff.Decode,
	}

	src := testImage()
	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			img, err := decode(&buf)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					got := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
					if got != src.RGBAAt(x, y) {
						t.Errorf("Pixel (%d,%d): expected %v, got %v", x, y, src.RGBAAt(x, y), got)
					}
				}
			}
		})
	}

	if err := Encode(io.Discard, src, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestScale(t *testing.T) {
	src := testImage()
	if Scale(src, 1) != image.Image(src) {
		t.Error("Expected factor 1 to return the original image")
	}
	if Scale(src, 0) != image.Image(src) {
		t.Error("Expected factor 0 to return the original image")
	}

	scaled := Scale(src, 2.5)
	if b := scaled.Bounds(); b.Dx() != 5 || b.Dy() != 5 {
		t.Errorf("Expected 5x5 image, got %v", b)
	}
	if b := Scale(src, 0.1).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("Expected downscaling to keep at least one pixel, got %v", b)
	}
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := FileSink{Dir: dir}

	location, err := sink.Save(context.Background(), "nested/name/simple.ppm", testImage(), FormatPPM)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if location != filepath.Join(dir, "simple.ppm") {
		t.Errorf("Expected file in output directory, got %s", location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n2 2\n255\n") {
		t.Errorf("Unexpected file header %q", string(data[:min(len(data), 12)]))
	}
}

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink(t *testing.T) {
	client := &fakeS3{}
	sink := S3Sink{Client: client, Bucket: "renders", Prefix: "scenes/simple"}

	location, err := sink.Save(context.Background(), "simple.png", testImage(), FormatPNG)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if location != "s3://renders/scenes/simple/simple.png" {
		t.Errorf("Unexpected location %s", location)
	}

	if aws.StringValue(client.input.Bucket) != "renders" || aws.StringValue(client.input.Key) != "scenes/simple/simple.png" {
		t.Errorf("Unexpected bucket/key %s/%s", aws.StringValue(client.input.Bucket), aws.StringValue(client.input.Key))
	}
	if aws.StringValue(client.input.ContentType) != "image/png" {
		t.Errorf("Expected image/png content type, got %s", aws.StringValue(client.input.ContentType))
	}
	if aws.Int64Value(client.input.ContentLength) != int64(len(client.body)) {
		t.Errorf("Content length %d does not match body size %d", aws.Int64Value(client.input.ContentLength), len(client.body))
	}
	if _, err := png.Decode(bytes.NewReader(client.body)); err != nil {
		t.Errorf("Uploaded body is not a PNG: %v", err)
	}
}

func TestS3Sink_UploadError(t *testing.T) {
	sentinel := errors.New("access denied")
	sink := S3Sink{Client: &fakeS3{err: sentinel}, Bucket: "renders"}

	if _, err := sink.Save(context.Background(), "a.ppm", testImage(), FormatPPM); !errors.Is(err, sentinel) {
		t.Errorf("Expected upload error, got %v", err)
	}
}
