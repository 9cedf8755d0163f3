package adapter

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/Z3ron7/server/internal/config"
	"github.com/Z3ron7/server/internal/logger"
	"github.com/Z3ron7/server/internal/utils"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const imageKeyPrefix = "profiles/"

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3ImageStore struct {
	client  objectPutter
	bucket  string
	baseURL string
	logger  *logger.Logger
}

// NewS3Client creates an S3 client. When cfg.EndpointURL is set (MinIO,
// LocalStack) it overrides the endpoint and enables path-style addressing.
func NewS3Client(ctx context.Context, cfg config.S3) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for S3: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if cfg.EndpointURL != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(awsCfg, clientOpts...), nil
}

// NewImageStore builds the [ImageStore] described by cfg. Without a bucket
// every upload fails with [ErrImageStoreDisabled].
func NewImageStore(ctx context.Context, cfg config.S3, logger *logger.Logger) (ImageStore, error) {
	if cfg.Bucket == "" {
		logger.Warn().Str("func", "NewImageStore").Msg("no S3 bucket configured, profile images are disabled")
		return disabledImageStore{}, nil
	}

	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newS3ImageStore(client, cfg, logger), nil
}

func newS3ImageStore(client objectPutter, cfg config.S3, logger *logger.Logger) *s3ImageStore {
	return &s3ImageStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: publicBaseURL(cfg),
		logger:  logger,
	}
}

func publicBaseURL(cfg config.S3) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.EndpointURL != "":
		return strings.TrimRight(cfg.EndpointURL, "/") + "/" + cfg.Bucket
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

// Upload implements [ImageStore]. Objects are keyed by a fresh ULID so
// client file names never reach the bucket.
func (s *s3ImageStore) Upload(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}

	key := path.Join(imageKeyPrefix, utils.NewULID()+ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Err(err).Str("func", "*s3ImageStore.Upload").Str("filename", filename).Msg("error uploading image")
		return "", fmt.Errorf("%w: %w", ErrImageUpload, err)
	}

	return s.baseURL + "/" + key, nil
}

type disabledImageStore struct{}

func (disabledImageStore) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", ErrImageStoreDisabled
}
