package services

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/neoportfolio/internal/config"
)

type fakePresigner struct {
	LastInput *s3.PutObjectInput
	Err       error
}

func (f *fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.LastInput = in
	if f.Err != nil {
		return nil, f.Err
	}
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *in.Key, Method: "PUT"}, nil
}

func uploadConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.S3Bucket = "portfolio-images"
	c.S3AccessKey = "ak"
	c.S3SecretKey = "sk"
	return c
}

func stubClock(t *testing.T) {
	t.Helper()
	orig := uploadClock
	t.Cleanup(func() { uploadClock = orig })
	uploadClock = func() time.Time { return time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC) }
}

func TestImageKey(t *testing.T) {
	key := ImageKey(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ".png")
	assert.Regexp(t, regexp.MustCompile(`^projects/2024/01/02/[0-9a-f-]{36}\.png$`), key)
}

func TestPresignImage_Disabled(t *testing.T) {
	c := uploadConfig()
	c.S3Bucket = ""
	_, err := NewUploadService(c).PresignImage(context.Background(), "a.png")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
}

func TestPresignImage_UnsupportedType(t *testing.T) {
	_, err := NewUploadService(uploadConfig()).PresignImage(context.Background(), "notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestPresignImage_RealSigner(t *testing.T) {
	stubClock(t)
	c := uploadConfig()

	up, err := NewUploadService(c).PresignImage(context.Background(), "Shot.PNG")
	require.NoError(t, err)

	assert.Regexp(t, `^projects/2024/03/07/[0-9a-f-]{36}\.png$`, up.Key)
	assert.Equal(t, "image/png", up.ContentType)
	assert.Equal(t, "https://portfolio-images.s3.us-east-1.amazonaws.com/"+up.Key, up.ImageURL)

	u, err := url.Parse(up.UploadURL)
	require.NoError(t, err)
	assert.Contains(t, u.Path, up.Key)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignImage_Seams(t *testing.T) {
	stubClock(t)
	origLoad, origNew, origPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPre
	})

	var region string
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		region = lo.Region
		return aws.Config{Region: lo.Region}, nil
	}

	var baseEndpoint string
	var pathStyle bool
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var o s3.Options
		for _, fn := range optFns {
			fn(&o)
		}
		if o.BaseEndpoint != nil {
			baseEndpoint = *o.BaseEndpoint
		}
		pathStyle = o.UsePathStyle
		return &s3.Client{}
	}

	fake := &fakePresigner{}
	newS3PresignClient = func(*s3.Client) putPresigner { return fake }

	c := uploadConfig()
	c.S3Region = "eu-central-1"
	c.S3BaseEndpoint = "http://minio:9000/"

	up, err := NewUploadService(c).PresignImage(context.Background(), "cover.webp")
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", region)
	assert.Equal(t, "http://minio:9000/", baseEndpoint)
	assert.True(t, pathStyle)
	assert.Equal(t, "portfolio-images", *fake.LastInput.Bucket)
	assert.Equal(t, "image/webp", *fake.LastInput.ContentType)
	assert.Equal(t, "https://signed.example/"+up.Key, up.UploadURL)
	assert.Equal(t, "http://minio:9000/portfolio-images/"+up.Key, up.ImageURL)

	c.S3PublicBaseURL = "https://cdn.example.com/"
	up, err = NewUploadService(c).PresignImage(context.Background(), "cover.webp")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+up.Key, up.ImageURL)

	fake.Err = errors.New("sign failed")
	_, err = NewUploadService(c).PresignImage(context.Background(), "cover.webp")
	assert.ErrorIs(t, err, fake.Err)

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	_, err = NewUploadService(c).PresignImage(context.Background(), "cover.webp")
	assert.Error(t, err)
}
