package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/blueprint/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{
	Endpoint:  "http://127.0.0.1:9000",
	Region:    "us-east-1",
	Bucket:    "studio",
	AccessKey: "minioadmin",
	SecretKey: "minioadmin",
}

func stubSeams(t *testing.T) {
	t.Helper()
	origLoad, origNew, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject = origLoad, origNew, origPut
	})
}

func TestNewS3Uploader_AppliesConfig(t *testing.T) {
	stubSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	u, err := NewS3Uploader(context.Background(), testConfig)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
}

func TestNewS3Uploader_Errors(t *testing.T) {
	stubSeams(t)

	_, err := NewS3Uploader(context.Background(), Config{})
	require.Error(t, err)

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3Uploader(context.Background(), testConfig)
	require.ErrorContains(t, err, "load-fail")
}

func TestUpload_PutsObjectAndReturnsURL(t *testing.T) {
	stubSeams(t)

	var got *s3.PutObjectInput
	var body []byte
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		body, _ = io.ReadAll(in.Body)
		return &s3.PutObjectOutput{}, nil
	}

	u := &S3Uploader{client: &s3.Client{}, cfg: testConfig, newKey: func() string { return "blueprints/k1" }}
	out, err := u.Upload(context.Background(), models.Attachment{ContentType: "image/png", Data: []byte{1, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, "studio", aws.ToString(got.Bucket))
	assert.Equal(t, "blueprints/k1", aws.ToString(got.Key))
	assert.Equal(t, "image/png", aws.ToString(got.ContentType))
	assert.Equal(t, []byte{1, 2, 3}, body)

	assert.Equal(t, "http://127.0.0.1:9000/studio/blueprints/k1", out.URL)
	assert.Nil(t, out.Data)
	assert.Equal(t, "image/png", out.ContentType)
}

func TestUpload_PublicURLOverridesEndpoint(t *testing.T) {
	stubSeams(t)
	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}

	cfg := testConfig
	cfg.PublicURL = "https://cdn.example.com/"
	u := &S3Uploader{client: &s3.Client{}, cfg: cfg, newKey: func() string { return "blueprints/k2" }}

	out, err := u.Upload(context.Background(), models.Attachment{Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/studio/blueprints/k2", out.URL)
}

func TestUpload_EdgeCases(t *testing.T) {
	stubSeams(t)
	u := &S3Uploader{client: &s3.Client{}, cfg: testConfig, newKey: func() string { return "blueprints/k" }}

	_, err := u.Upload(context.Background(), models.Attachment{})
	require.ErrorIs(t, err, ErrEmptyAttachment)

	already := models.Attachment{URL: "https://x/y"}
	out, err := u.Upload(context.Background(), already)
	require.NoError(t, err)
	assert.Equal(t, already, out)

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("denied")
	}
	_, err = u.Upload(context.Background(), models.Attachment{Data: []byte("x")})
	require.ErrorContains(t, err, "denied")
}
