package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/narteyr/flashcards/internal/model"
)

// S3Backend stores uploads in an S3-compatible bucket (AWS or MinIO).
type S3Backend struct {
	client *s3.Client
	bucket string
}

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for MinIO
	AccessKey string
	SecretKey string
}

func NewS3Backend(ctx context.Context, cfg *S3Config) (*S3Backend, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Backend{client: client, bucket: cfg.Bucket}, nil
}

func (b *S3Backend) Save(ctx context.Context, in SaveInput) (*model.File, error) {
	fileID := uuid.New()
	key := fmt.Sprintf("uploads/%s/%s/%s", in.UserID, fileID, in.FileName)

	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        in.Reader,
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	file := &model.File{
		JobID:       in.JobID,
		UserID:      in.UserID,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Size:        in.Size,
		StoragePath: fmt.Sprintf("s3://%s/%s", b.bucket, key),
	}
	file.ID = fileID

	return file, nil
}

func (b *S3Backend) Open(ctx context.Context, file *model.File) (io.ReadCloser, error) {
	key := file.StoragePath
	prefix := fmt.Sprintf("s3://%s/", b.bucket)
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		key = key[len(prefix):]
	}

	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	return out.Body, nil
}
