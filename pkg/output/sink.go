package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// Sink stores an encoded image under a name and returns where it went
type Sink interface {
	Save(ctx context.Context, name string, img image.Image, format Format) (string, error)
}

// FileSink writes images into a local directory
type FileSink struct {
	Dir string
}

// Save encodes img into Dir/name, creating Dir if needed
func (s FileSink) Save(_ context.Context, name string, img image.Image, format Format) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	filename := filepath.Join(s.Dir, filepath.Base(name))
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return "", fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return filename, nil
}

// S3Options configures the S3 client used by S3Sink
type S3Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Client creates an S3 client for an S3-compatible endpoint
func NewS3Client(opts S3Options) (s3iface.S3API, error) {
	config := &aws.Config{
		Region:           aws.String(opts.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if opts.Endpoint != "" {
		config.Endpoint = aws.String(opts.Endpoint)
	}
	if opts.AccessKey != "" {
		config.Credentials = credentials.NewStaticCredentials(opts.AccessKey, opts.SecretKey, "")
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Sink uploads images to a bucket under an optional key prefix
type S3Sink struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
}

// Save encodes img and uploads it, returning the s3:// URL of the object
func (s S3Sink) Save(ctx context.Context, name string, img image.Image, format Format) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := path.Join(s.Prefix, path.Base(name))
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(int64(buf.Len())),
		ContentType:   aws.String(format.ContentType()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.Bucket, key), nil
}
