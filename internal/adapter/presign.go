package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PresignIssuer implements [URLSigner] by pure delegation to the S3
// presign capability. It keeps no local state.
type PresignIssuer struct {
	presign *s3.PresignClient
}

// NewPresignIssuer constructs a [PresignIssuer] over the given S3 client.
func NewPresignIssuer(client *s3.Client) *PresignIssuer {
	return &PresignIssuer{presign: s3.NewPresignClient(client)}
}

// IssueGetURL implements [URLSigner]. The returned URL grants read access
// to the blob at bucket/key until ttl elapses.
func (p *PresignIssuer) IssueGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("error presigning read url for %q: %w", key, err)
	}

	return req.URL, nil
}
