//go:generate go run go.uber.org/mock/mockgen -source=s3_client.go -destination=../mocks/mock_object_store.go -package=mocks
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"messenger-api/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectStore is the slice of the object storage API the upload flow needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) error
	FileURL(key string) string
}

type Client struct {
	cfg config.StorageConfig
	s3  *s3.Client
}

func NewClient(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if parsed, err := url.Parse(endpoint); err == nil {
			endpoint = parsed.String()
		}
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		cfg: cfg,
		s3:  s3Client,
	}, nil
}

func (c *Client) PutObject(ctx context.Context, key, contentType string, body []byte) error {
	if c == nil {
		return errors.New("s3 client not initialized")
	}
	if key == "" {
		return errors.New("object key is required")
	}
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	return err
}

// FileURL derives the public URL of key. It never calls the store.
func (c *Client) FileURL(key string) string {
	if c == nil {
		return ""
	}
	return PublicURL(c.cfg, key)
}

// PublicURL is PublicBase/key when a public base is configured, otherwise the CDN
// path of the configured storage account.
func PublicURL(cfg config.StorageConfig, key string) string {
	if key == "" {
		return ""
	}
	if cfg.PublicBase != "" {
		return strings.TrimRight(cfg.PublicBase, "/") + "/" + key
	}
	return fmt.Sprintf("%s/projects/%s/bucket/%s", strings.TrimRight(cfg.CDNBase, "/"), cfg.AccessKey, key)
}
