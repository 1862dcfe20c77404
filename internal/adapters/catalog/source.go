package catalog

import (
	"context"
	"estate-agent-service/schemas"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	sourceEmbedded = "embedded"
	schemeFile     = "file://"
	schemeS3       = "s3://"
)

// S3ObjectGetter - часть S3 API, нужная для чтения каталога.
type S3ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// IsS3Source сообщает, нужен ли S3 клиент для источника.
func IsS3Source(source string) bool {
	return strings.HasPrefix(source, schemeS3)
}

// LoadListings читает сырые данные каталога. Источник:
//   - "" или "embedded" - встроенный набор;
//   - "s3://bucket/key" - объект в S3;
//   - "file:///path" или просто путь - локальный файл.
func LoadListings(ctx context.Context, source string, s3Client S3ObjectGetter) ([]byte, error) {
	switch {
	case source == "" || source == sourceEmbedded:
		return schemas.DefaultListings, nil

	case IsS3Source(source):
		bucket, key, err := parseS3Location(source)
		if err != nil {
			return nil, err
		}
		if s3Client == nil {
			return nil, fmt.Errorf("s3 client is required for source %s", source)
		}
		out, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get listings from s3://%s/%s: %w", bucket, key, err)
		}
		defer out.Body.Close()

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read listings from s3://%s/%s: %w", bucket, key, err)
		}
		return data, nil

	default:
		path := strings.TrimPrefix(source, schemeFile)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read listings file %s: %w", path, err)
		}
		return data, nil
	}
}

func parseS3Location(source string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(source, schemeS3)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 source %q, expected s3://bucket/key", source)
	}
	return bucket, key, nil
}
