package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/eastlinkgh/connect/internal/config"
)

// Client — клиент S3-совместимого хранилища (MinIO и т.п.) для медиафайлов.
type Client struct {
	s3Client      *s3.Client
	uploader      *manager.Uploader
	bucketName    string
	publicBaseURL string
	logger        *slog.Logger
}

// NewClient создаёт и инициализирует клиент хранилища медиа.
// Бакет создаётся, если его ещё нет.
func NewClient(cfg *appconfig.Config, logger *slog.Logger) (*Client, error) {
	media := cfg.Media
	if media.Endpoint == "" || media.AccessKeyID == "" || media.SecretAccessKey == "" || media.BucketName == "" {
		return nil, fmt.Errorf("media storage credentials (MEDIA_ENDPOINT, MEDIA_ACCESS_KEY_ID, MEDIA_SECRET_ACCESS_KEY, MEDIA_BUCKET_NAME) must be set")
	}

	scheme := "http"
	if media.UseSSL {
		scheme = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", scheme, media.Endpoint)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(media.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(media.AccessKeyID, media.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config for media storage: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpointURL)
		// MinIO требует path-style адресацию
		o.UsePathStyle = true
	})

	publicBaseURL := media.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = endpointURL
	}

	c := &Client{
		s3Client:      s3Client,
		uploader:      manager.NewUploader(s3Client),
		bucketName:    media.BucketName,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}

	if err := c.ensureBucket(media.Region); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) ensureBucket(region string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	})
	if err == nil {
		c.logger.Info("media bucket ready", "bucket", c.bucketName)
		return nil
	}

	c.logger.Info("media bucket not found, creating", "bucket", c.bucketName)

	_, err = c.s3Client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucketName),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket '%s': %w", c.bucketName, err)
	}

	waiter := s3.NewBucketExistsWaiter(c.s3Client)
	if err := waiter.Wait(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}, 30*time.Second); err != nil {
		return fmt.Errorf("failed waiting for bucket '%s': %w", c.bucketName, err)
	}

	c.logger.Info("media bucket created", "bucket", c.bucketName)
	return nil
}

// UploadFile загружает файл и возвращает его публичный URL.
func (c *Client) UploadFile(ctx context.Context, objectKey string, fileContent io.Reader, contentType string) (string, error) {
	_, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        fileContent,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", objectKey, c.bucketName, err)
	}

	return fmt.Sprintf("%s/%s/%s", c.publicBaseURL, c.bucketName, objectKey), nil
}

// GetFile получает содержимое объекта.
func (c *Client) GetFile(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	output, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from bucket %s: %w", objectKey, c.bucketName, err)
	}
	return output.Body, nil
}

// DeleteFile удаляет объект.
func (c *Client) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", objectKey, c.bucketName, err)
	}
	return nil
}
