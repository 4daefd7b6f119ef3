package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dlima/medalha/pkg/config"
)

// S3Store implements Store on top of an S3-compatible object store
// (AWS S3 or MinIO). One bucket holds the whole lake; layer folders
// are encoded in the object keys.
type S3Store struct {
	client *s3.Client
	bucket string
}

// ConnectionInfo holds credentials parsed from CONNECTION_STRING.
type ConnectionInfo struct {
	Endpoint  string
	AccessKey string
	SecretKey string
}

// ParseConnectionString parses a semicolon-separated k=v credential
// string, e.g. "endpoint=http://localhost:9000;access_key=x;secret_key=y".
// Unknown keys are ignored; an empty string yields a zero value and
// the default AWS credential chain is used instead.
func ParseConnectionString(s string) (ConnectionInfo, error) {
	var info ConnectionInfo

	if strings.TrimSpace(s) == "" {
		return info, nil
	}

	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return ConnectionInfo{}, fmt.Errorf("malformed connection string segment %q", part)
		}

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "endpoint":
			info.Endpoint = strings.TrimSpace(value)
		case "access_key":
			info.AccessKey = strings.TrimSpace(value)
		case "secret_key":
			info.SecretKey = strings.TrimSpace(value)
		}
	}

	return info, nil
}

// NewS3Store creates a store bound to the configured bucket.
func NewS3Store(ctx context.Context, cfg config.BlobConfig) (*S3Store, error) {
	info, err := ParseConnectionString(cfg.ConnectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if info.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(info.AccessKey, info.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if info.Endpoint != "" {
			o.BaseEndpoint = aws.String(info.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client: client,
		bucket: cfg.Container,
	}, nil
}

// Exists reports whether an object is present at key.
func (s *S3Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}

	return true, nil
}

// Read returns the whole object at key.
func (s *S3Store) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body %s: %w", key, err)
	}

	return data, nil
}

// Write stores data at key, honoring the overwrite flag.
func (s *S3Store) Write(ctx context.Context, key string, data []byte, overwrite bool) error {
	if !overwrite {
		exists, err := s.Exists(ctx, key)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadyExists
		}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}

	return nil
}
