package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

// objectStore is the part of the S3 client the bucket needs.
type objectStore interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	// PublicURL is the base images are served from, e.g. a CDN in front of
	// the bucket. Empty means Endpoint/Bucket.
	PublicURL string
	Prefix    string
}

func (c S3Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Bucket uploads images straight to S3-compatible storage.
type Bucket struct {
	cfg    S3Config
	client objectStore
}

func NewBucket(cfg S3Config) *Bucket {
	return &Bucket{cfg: cfg, client: newS3Client(cfg)}
}

func newS3Client(cfg S3Config) *s3.Client {
	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func (b *Bucket) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (model.Media, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Media{}, fmt.Errorf("read image: %w", err)
	}
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	id := path.Join(strings.Trim(b.cfg.Prefix, "/"), uuid.NewString())
	key := id + "." + ext

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return model.Media{}, apperr.Wrap(apperr.KindNetwork, err, "image storage unavailable")
	}

	u := b.publicURL(key)
	return model.Media{
		PublicID:     id,
		SecureURL:    u,
		URL:          u,
		Format:       ext,
		ResourceType: "image",
		Bytes:        int64(len(data)),
	}, nil
}

func (b *Bucket) publicURL(key string) string {
	base := strings.TrimRight(b.cfg.PublicURL, "/")
	if base == "" {
		base = strings.TrimRight(b.cfg.Endpoint, "/") + "/" + url.PathEscape(b.cfg.Bucket)
	}
	return base + "/" + key
}
