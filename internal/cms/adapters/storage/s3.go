package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"simplylife/internal/cms/domain/services"
	svc "simplylife/internal/cms/ports/services"
	"simplylife/pkg/logger"
)

// ObjectAPI - часть клиента S3, используемая хранилищем.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store хранит изображения в бакете S3 и возвращает их публичный URL.
type S3Store struct {
	client  ObjectAPI
	bucket  string
	prefix  string
	baseURL string
}

// NewS3Store создает хранилище S3.
func NewS3Store(client ObjectAPI, bucket, region, prefix string) svc.ImageStore {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", bucket, region),
	}
}

func (s *S3Store) objectKey(key string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return clean, nil
	}
	return s.prefix + "/" + clean, nil
}

// Save загружает изображение в бакет.
func (s *S3Store) Save(ctx context.Context, key string, image services.Image) (string, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", err
	}

	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(image.Content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(image.Content))),
	})
	if err != nil {
		logger.Log(ctx).Error(ctx, "error uploading image", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("%w: %w", services.ErrStoreFailed, err)
	}
	return s.baseURL + objectKey, nil
}

// Delete удаляет объект по URL, выданному Save.
func (s *S3Store) Delete(ctx context.Context, url string) error {
	objectKey, ok := strings.CutPrefix(url, s.baseURL)
	if !ok || objectKey == "" {
		return fmt.Errorf("%w: %q", ErrInvalidKey, url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("removing image: %w", err)
	}
	return nil
}
