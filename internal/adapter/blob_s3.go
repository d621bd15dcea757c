// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/MKhiriev/go-doc-vault/internal/config"
	"github.com/MKhiriev/go-doc-vault/internal/logger"
)

// S3BlobStore is the S3-compatible implementation of [BlobStore] for the
// encrypted document container. It works equally against AWS S3 and a
// MinIO deployment via the configurable base endpoint.
type S3BlobStore struct {
	client *s3.Client
	bucket string
	logger *logger.Logger

	// ensureOnce guards the one-shot bucket discovery. Safe to compute
	// redundantly in principle, but the single-init keeps startup quiet.
	ensureOnce sync.Once
	ensureErr  error
}

// NewS3Client builds an S3 client from blob-store configuration using
// static credentials and, when set, a custom base endpoint.
func NewS3Client(ctx context.Context, cfg config.Blob) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, // MINIO_ROOT_USER in a MinIO deployment
			cfg.SecretKey, // MINIO_ROOT_PASSWORD in a MinIO deployment
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("error loading blob store configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true // MinIO serves buckets by path, not subdomain
		}
	})

	return client, nil
}

// NewS3BlobStore constructs an [S3BlobStore] over the given client and
// bucket name. The bucket is discovered or created lazily on first use.
func NewS3BlobStore(client *s3.Client, bucket string, logger *logger.Logger) *S3BlobStore {
	return &S3BlobStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// EnsureBucket implements [BlobStore]. The first call heads the configured
// bucket and creates it when absent; the outcome is cached for the process
// lifetime, so every later call is a no-op returning the cached result.
func (s *S3BlobStore) EnsureBucket(ctx context.Context) error {
	s.ensureOnce.Do(func() {
		_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
		if err == nil {
			s.logger.Info().Str("bucket", s.bucket).Msg("blob store bucket found")
			return
		}

		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			s.ensureErr = fmt.Errorf("%w: %w", ErrBucketUnavailable, err)
			return
		}

		if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
			s.ensureErr = fmt.Errorf("%w: %w", ErrBucketUnavailable, err)
			return
		}
		s.logger.Info().Str("bucket", s.bucket).Msg("blob store bucket created")
	})

	return s.ensureErr
}

// Upload implements [BlobStore]. The content reader is handed directly to
// the provider client, so the bytes stream through without local buffering
// beyond the client's own chunking.
func (s *S3BlobStore) Upload(ctx context.Context, content io.Reader, key, mimeType string) error {
	if err := s.EnsureBucket(ctx); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        content,
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return fmt.Errorf("error uploading blob %q: %w", key, err)
	}

	return nil
}

// DownloadStream implements [BlobStore]. The returned body must be closed
// by the caller; it streams directly from the provider.
func (s *S3BlobStore) DownloadStream(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %q", ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("error downloading blob %q: %w", key, err)
	}

	return out.Body, nil
}

// Delete implements [BlobStore]. An already-absent blob is success.
func (s *S3BlobStore) Delete(ctx context.Context, key string) error {
	if err := s.EnsureBucket(ctx); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("error deleting blob %q: %w", key, err)
	}

	return nil
}

// isNoSuchKey reports whether err is the provider's "object does not
// exist" condition in either of its wire forms.
func isNoSuchKey(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
