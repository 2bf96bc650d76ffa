// Package media issues presigned URLs for song files and artwork kept in
// S3-compatible storage (MinIO in development).
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/logging"
	sc "github.com/dmitrijs2005/musicbox/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type Service struct {
	cfg sc.S3
	log logging.Logger
}

func NewService(cfg sc.S3, log logging.Logger) *Service {
	return &Service{cfg: cfg, log: log.With("module", "media")}
}

// newStorageKey builds an object key like songs/2026/8/25/<uuid>.
func newStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("songs/%d/%d/%d/%v", d.Year(), int(d.Month()), d.Day(), uuid.New())
}

func (s *Service) presignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"", // токен (не нужен)
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// NewUploadURL returns a fresh storage key and a presigned PUT URL the
// client uploads the object to.
func (s *Service) NewUploadURL(ctx context.Context) (string, string, error) {

	pc, err := s.presignClient()
	if err != nil {
		s.log.Error(ctx, "error building presign client", "error", err)
		return "", "", common.ErrorInternal
	}

	bucket := s.cfg.Bucket
	key := newStorageKey()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		s.log.Error(ctx, "error presigning upload", "error", err)
		return "", "", common.ErrorInternal
	}

	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for a previously uploaded key.
func (s *Service) DownloadURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", common.NewValidationError("Missing key")
	}

	pc, err := s.presignClient()
	if err != nil {
		s.log.Error(ctx, "error building presign client", "error", err)
		return "", common.ErrorInternal
	}

	bucket := s.cfg.Bucket

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		s.log.Error(ctx, "error presigning download", "error", err)
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
