package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sony/gobreaker/v2"

	"github.com/zelosify/server/internal/utils/metrics"
)

// Storage errors. Callers must be able to tell "object missing" apart from
// "storage unavailable"; neither is ever folded into a token error.
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrUnavailable    = errors.New("object storage unavailable")
)

// Config holds object storage configuration.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
}

// Client wraps the S3 client for bucket operations. All network calls run
// through a circuit breaker so a failing store degrades fast instead of
// holding upload batches on timeouts.
type Client struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	breaker   *gobreaker.CircuitBreaker[any]
	metrics   *metrics.Metrics
}

// NewClient creates a new storage client.
func NewClient(cfg *Config, m *metrics.Metrics) (*Client, error) {
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.Bucket == "" {
		return nil, errors.New("incomplete storage configuration")
	}

	creds := credentials.NewStaticCredentialsProvider(
		cfg.AccessKeyID,
		cfg.SecretAccessKey,
		"",
	)

	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:    "object-storage",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing object is an answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrObjectNotFound)
		},
	})

	return &Client{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		breaker:   breaker,
		metrics:   m,
	}, nil
}

// execute runs a storage call through the circuit breaker, mapping an open
// breaker to ErrUnavailable.
func (c *Client) execute(op string, fn func() (any, error)) (any, error) {
	start := time.Now()
	out, err := c.breaker.Execute(fn)
	if c.metrics != nil {
		c.metrics.ObserveStorageOp(op, start, err)
	}
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return nil, err
	}
	return out, nil
}

// PutObject uploads an object.
func (c *Client) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := c.execute("put_object", func() (any, error) {
		return c.client.PutObject(ctx, input)
	})
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: put object %q: %v", ErrUnavailable, key, err)
	}
	return nil
}

// PresignedURL represents a presigned URL response.
type PresignedURL struct {
	URL       string
	Method    string
	ExpiresAt time.Time
}

// PresignUpload generates a presigned URL for uploading an object directly
// to the store.
func (c *Client) PresignUpload(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	req, err := c.presigner.PresignPutObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &PresignedURL{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// PresignDownload generates a short-lived presigned URL for reading an
// object. Permanent or public URLs are never handed out.
func (c *Client) PresignDownload(ctx context.Context, key string, expiry time.Duration) (*PresignedURL, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	req, err := c.presigner.PresignGetObject(ctx, input, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("presign get: %w", err)
	}

	return &PresignedURL{
		URL:       req.URL,
		Method:    req.Method,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}

// ObjectInfo represents object metadata.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified *time.Time
}

// HeadObject checks if an object exists and returns its metadata.
func (c *Client) HeadObject(ctx context.Context, key string) (*ObjectInfo, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}

	out, err := c.execute("head_object", func() (any, error) {
		result, err := c.client.HeadObject(ctx, input)
		if err != nil {
			var nsk *types.NoSuchKey
			var nf *types.NotFound
			if errors.As(err, &nsk) || errors.As(err, &nf) {
				return nil, ErrObjectNotFound
			}
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) || errors.Is(err, ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: head object %q: %v", ErrUnavailable, key, err)
	}

	result := out.(*s3.HeadObjectOutput)

	info := &ObjectInfo{Key: key, LastModified: result.LastModified}
	if result.ContentLength != nil {
		info.Size = *result.ContentLength
	}
	if result.ContentType != nil {
		info.ContentType = *result.ContentType
	}
	return info, nil
}

// ObjectExists checks if an object exists.
func (c *Client) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := c.HeadObject(ctx, key)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
