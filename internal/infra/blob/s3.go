package blob

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/voyagevr/api/internal/config"
)

// S3Deps bundles the S3 client used for destination media uploads.
type S3Deps struct {
	Client  *s3.Client
	Presign *s3.PresignClient
	Bucket  string

	publicBaseURL string
	region        string
}

func NewS3(ctx context.Context, cfg *config.Config) (*S3Deps, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Deps{
		Client:        client,
		Presign:       s3.NewPresignClient(client),
		Bucket:        cfg.S3.Bucket,
		publicBaseURL: cfg.S3.PublicBaseURL,
		region:        cfg.S3.Region,
	}, nil
}

// PresignPut returns a presigned PUT URL for uploading one media object.
func (d *S3Deps) PresignPut(ctx context.Context, key, contentType string, expire time.Duration) (string, error) {
	req, err := d.Presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(expire))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PublicURL is the URL clients read the object from after upload.
func (d *S3Deps) PublicURL(key string) string {
	if d.publicBaseURL != "" {
		return strings.TrimSuffix(d.publicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", d.Bucket, d.region, key)
}
