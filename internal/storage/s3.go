package storage

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	appconfig "github.com/fitcoachbr/coach-api/internal/config"
)

type Client struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	urlTTL    time.Duration
}

func NewClient(cfg *appconfig.Config) *Client {
	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
		UsePathStyle: true,
	}

	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}

	client := s3.New(opts)

	return &Client{
		s3:        client,
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.S3Bucket,
		urlTTL:    cfg.SignedURLTTL,
	}
}

func (c *Client) Upload(
	ctx context.Context,
	key string,
	contentType string,
	data []byte,
) error {

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

// SignedURL mints a time-boxed GET URL for a private object.
func (c *Client) SignedURL(
	ctx context.Context,
	key string,
) (string, time.Time, error) {

	req, err := c.presigner.PresignGetObject(ctx,
		&s3.GetObjectInput{
			Bucket: aws.String(c.bucket),
			Key:    aws.String(key),
		},
		s3.WithPresignExpires(c.urlTTL),
	)
	if err != nil {
		return "", time.Time{}, err
	}

	return req.URL, time.Now().Add(c.urlTTL), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

// --------------------------------------------------
// Object keys
// --------------------------------------------------

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func SanitizeFilename(filename string) string {
	return unsafeChars.ReplaceAllString(filename, "_")
}

// ObjectKey builds folder/YYYYMMDD-uuid-name keys so uploads never
// collide and the original name stays recognizable.
func ObjectKey(folder, originalFilename string) string {
	return fmt.Sprintf(
		"%s/%s-%s-%s",
		folder,
		time.Now().Format("20060102"),
		uuid.New().String(),
		SanitizeFilename(originalFilename),
	)
}
