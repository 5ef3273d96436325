package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type AWSS3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewAWSS3Storage(region, bucket string) (*AWSS3Storage, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSS3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (a *AWSS3Storage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(request.Key),
		Body:        request.Reader,
		ContentType: aws.String(request.ContentType),
	}

	if request.Size > 0 {
		input.ContentLength = aws.Int64(request.Size)
	}

	if len(request.Metadata) > 0 {
		input.Metadata = request.Metadata
	}

	resp, err := a.client.PutObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResponse{
		Key:  request.Key,
		URL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, request.Key),
		Size: request.Size,
		ETag: aws.ToString(resp.ETag),
	}, nil
}

func (a *AWSS3Storage) Download(ctx context.Context, key string) (*DownloadResponse, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}

	resp, err := a.client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}

	return &DownloadResponse{
		Reader:       resp.Body,
		Size:         aws.ToInt64(resp.ContentLength),
		ContentType:  aws.ToString(resp.ContentType),
		LastModified: aws.ToTime(resp.LastModified),
	}, nil
}

func (a *AWSS3Storage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}

	_, err := a.client.DeleteObject(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	return nil
}

func (a *AWSS3Storage) GetURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	presignClient := s3.NewPresignClient(a.client)

	request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiration))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}

	return request.URL, nil
}
