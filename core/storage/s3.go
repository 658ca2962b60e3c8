package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/errors"
	"travel-ticket-api/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Store struct {
	client *s3.Client
	cfg    config.S3Config
}

func NewS3Store(_ context.Context, cfg config.S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.Configuration("S3 bucket is required")
	}

	opts := s3.Options{
		Region:                     cfg.Region,
		UsePathStyle:               cfg.UsePathStyle,
		Retryer:                    aws.NopRetryer{},
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &S3Store{client: s3.New(opts), cfg: cfg}, nil
}

func (s *S3Store) Backend() string {
	return constants.MediaBackendS3
}

func (s *S3Store) key(obj Object) string {
	return strings.TrimPrefix(path.Join(s.cfg.Prefix, dirForKind(obj.Kind), obj.Name), "/")
}

func (s *S3Store) publicURL(key string) string {
	switch {
	case s.cfg.PublicBaseURL != "":
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	case s.cfg.Endpoint != "" && s.cfg.UsePathStyle:
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
	}
}

func (s *S3Store) Put(ctx context.Context, obj Object) (Reference, error) {
	key := s.key(obj)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(obj.Data),
		ContentType:   aws.String(obj.ContentType),
		ContentLength: aws.Int64(int64(len(obj.Data))),
	})
	if err != nil {
		logger.Error("S3Store:Put:PutObject", "bucket", s.cfg.Bucket, "key", key, "error", err)
		return Reference{}, errors.Upload("failed to upload to S3", err)
	}

	return Reference{Path: s.publicURL(key), FileID: key}, nil
}
