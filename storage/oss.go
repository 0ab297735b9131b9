package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

var client *s3.Client

// Init builds the object-storage client from the environment. The bucket is
// S3-compatible and addressed through a custom endpoint.
func Init() error {
	region := os.Getenv("OSS_REGION")
	accessKey := os.Getenv("OSS_ACCESS_KEY_ID")
	secretKey := os.Getenv("OSS_ACCESS_KEY_SECRET")

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return err
	}

	client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint := os.Getenv("OSS_ENDPOINT"); endpoint != "" {
			o.BaseEndpoint = aws.String("https://" + endpoint)
		}
	})
	return nil
}

func Bucket() string {
	return os.Getenv("OSS_BUCKET")
}

// ObjectKey builds the deterministic storage key: {folder}/{year}/{month}/{filename}.
func ObjectKey(folder, filename string) string {
	now := time.Now()
	return fmt.Sprintf("%s/%d/%d/%s", folder, now.Year(), int(now.Month()), filename)
}

// PublicURL is the virtual-hosted URL the frontend loads images from.
func PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", Bucket(), os.Getenv("OSS_ENDPOINT"), key)
}

// ThumbnailURL appends the bucket's image-resize transform to the public URL.
func ThumbnailURL(key string) string {
	return PublicURL(key) + "?x-oss-process=image/resize,w_300,h_300,m_fill"
}

// UploadResult carries the URLs a stored object is reachable under.
type UploadResult struct {
	Key          string
	URL          string
	ThumbnailURL string
}

// Upload stores the blob under key and returns its public URLs.
func Upload(ctx context.Context, key string, body io.Reader, contentType string) (*UploadResult, error) {
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(Bucket()),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("max-age=31536000"),
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		Key:          key,
		URL:          PublicURL(key),
		ThumbnailURL: ThumbnailURL(key),
	}, nil
}

func Delete(ctx context.Context, key string) error {
	_, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(Bucket()),
		Key:    aws.String(key),
	})
	return err
}

// BatchDelete removes up to 1000 keys per DeleteObjects call. Failures are
// logged; cleanup of orphaned objects is best-effort.
func BatchDelete(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}

	for start := 0; start < len(keys); start += 1000 {
		end := start + 1000
		if end > len(keys) {
			end = len(keys)
		}

		objects := make([]types.ObjectIdentifier, 0, end-start)
		for _, key := range keys[start:end] {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(Bucket()),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return err
		}
		for _, e := range out.Errors {
			log.Warn().
				Str("key", aws.ToString(e.Key)).
				Str("message", aws.ToString(e.Message)).
				Msg("object delete failed")
		}
	}
	return nil
}
