// Package mediastore implements the media object store on S3 presigned URLs.
// The API never proxies file bytes: clients upload via a presigned PUT and
// stream playback via presigned GETs.
package mediastore

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	uploadExpiry = 5 * time.Minute
	readExpiry   = 15 * time.Minute
)

// Store presigns upload and read URLs against a single bucket. Keys are
// prefixed with "media/" and carry a random component so distinct uploads of
// the same file name never collide.
type Store struct {
	presigner *s3.PresignClient
	bucket    string
	newID     func() string
}

func NewStore(client *s3.Client, bucket string) *Store {
	return &Store{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		newID:     func() string { return uuid.NewString() },
	}
}

// NewStoreFromEnv builds an S3 client from the default AWS config chain
// (credentials, region) and wraps it in a Store.
func NewStoreFromEnv(ctx context.Context, bucket string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewStore(s3.NewFromConfig(cfg), bucket), nil
}

func (s *Store) PresignUpload(ctx context.Context, fileName, contentType string) (string, string, error) {
	key := "media/" + s.newID() + "/" + sanitizeFileName(fileName)
	out, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presign upload for %q: %w", fileName, err)
	}
	return out.URL, key, nil
}

func (s *Store) ResolveURL(ctx context.Context, key string) (string, error) {
	out, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(readExpiry))
	if err != nil {
		return "", fmt.Errorf("presign read for %q: %w", key, err)
	}
	return out.URL, nil
}

// sanitizeFileName strips any path components and replaces characters that
// need escaping in S3 keys.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
