package services

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/neoportfolio/internal/config"
)

const uploadExpiry = 15 * time.Minute

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// Upload is a presigned PUT for one project image.
type Upload struct {
	Key         string `json:"key"`
	UploadURL   string `json:"uploadUrl"`
	ImageURL    string `json:"imageUrl"`
	ContentType string `json:"contentType"`
}

type putPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Seams for tests.
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
	newS3PresignClient    = func(c *s3.Client) putPresigner { return s3.NewPresignClient(c) }
	uploadClock           = time.Now
)

type UploadService struct {
	cfg *config.Config
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{cfg: cfg}
}

// ImageKey builds projects/YYYY/MM/DD/<uuid><ext>.
func ImageKey(t time.Time, ext string) string {
	return fmt.Sprintf("projects/%04d/%02d/%02d/%s%s", t.Year(), int(t.Month()), t.Day(), uuid.NewString(), ext)
}

func (s *UploadService) presigner(ctx context.Context) (putPresigner, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(s.cfg.S3Region)}
	if s.cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.cfg.S3AccessKey, s.cfg.S3SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return newS3PresignClient(client), nil
}

// PresignImage returns a short-lived upload URL for filename's extension.
func (s *UploadService) PresignImage(ctx context.Context, filename string) (*Upload, error) {
	if !s.cfg.UploadsEnabled() {
		return nil, ErrUploadsDisabled
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}

	p, err := s.presigner(ctx)
	if err != nil {
		return nil, err
	}

	key := ImageKey(uploadClock(), ext)
	bucket := s.cfg.S3Bucket
	req, err := p.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(uploadExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &Upload{Key: key, UploadURL: req.URL, ImageURL: s.publicURL(key), ContentType: contentType}, nil
}

func (s *UploadService) publicURL(key string) string {
	switch {
	case s.cfg.S3PublicBaseURL != "":
		return strings.TrimRight(s.cfg.S3PublicBaseURL, "/") + "/" + key
	case s.cfg.S3BaseEndpoint != "":
		return strings.TrimRight(s.cfg.S3BaseEndpoint, "/") + "/" + path.Join(s.cfg.S3Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.S3Bucket, s.cfg.S3Region, key)
	}
}
