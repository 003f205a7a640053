// Package blobstore uploads blueprint attachments to S3-compatible storage.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

var ErrEmptyAttachment = errors.New("attachment has no data")

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base of returned object URLs; Endpoint when empty.
	PublicURL string
}

// Enabled reports whether uploads are configured at all.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

func KeyPrefix() string { return "blueprints/" }

// Uploader stores an attachment and returns it in URL form.
type Uploader interface {
	Upload(ctx context.Context, a models.Attachment) (models.Attachment, error)
}

type S3Uploader struct {
	client *s3.Client
	cfg    Config
	newKey func() string
}

func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if !cfg.Enabled() {
		return nil, errors.New("blob bucket is not configured")
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Uploader{
		client: client,
		cfg:    cfg,
		newKey: func() string { return KeyPrefix() + uuid.NewString() },
	}, nil
}

// Upload puts the attachment bytes into the bucket. The result carries the
// object URL and no data. An attachment that already has a URL is returned
// unchanged.
func (u *S3Uploader) Upload(ctx context.Context, a models.Attachment) (models.Attachment, error) {
	if len(a.Data) == 0 {
		if a.URL != "" {
			return a, nil
		}
		return models.Attachment{}, ErrEmptyAttachment
	}

	key := u.newKey()
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(a.Data),
	}
	if a.ContentType != "" {
		in.ContentType = aws.String(a.ContentType)
	}

	if _, err := putObject(u.client, ctx, in); err != nil {
		return models.Attachment{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return models.Attachment{ContentType: a.ContentType, URL: u.objectURL(key)}, nil
}

func (u *S3Uploader) objectURL(key string) string {
	base := u.cfg.PublicURL
	if base == "" {
		base = u.cfg.Endpoint
	}
	return strings.TrimRight(base, "/") + "/" + u.cfg.Bucket + "/" + key
}
