package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// ObjectHeader is the subset of *s3.Client used by S3.
type ObjectHeader interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type s3Source struct {
	client ObjectHeader
	bucket string
	prefix string
}

// S3 reports whether bucket holds an object whose key is prefix+value,
// e.g. to check that an upload referenced by a form really exists.
// Values with ".." never exist.
func S3(client ObjectHeader, bucket, prefix string) (Source, error) {
	if bucket == "" {
		return nil, ErrInvalidIdentifier
	}
	return &s3Source{client: client, bucket: bucket, prefix: prefix}, nil
}

func (s *s3Source) Exists(ctx context.Context, value string) (bool, error) {
	key := s.prefix + strings.TrimPrefix(value, "/")
	if strings.Contains(key, "..") {
		return false, nil
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}
	if isS3NotFound(err) {
		return false, nil
	}
	return false, errors.Join(ErrLookupFailed, fmt.Errorf("s3 object %s/%s: %w", s.bucket, key, err))
}

// HeadObject has no body, so a missing key surfaces as NotFound rather than NoSuchKey.
func isS3NotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	return false
}

// S3Config configures ConnectS3.
type S3Config struct {
	Region         string `env:"S3_REGION,required"`                     // Region is the AWS region of the bucket.
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`                       // AccessKeyID and SecretKey switch to static credentials when both are set.
	SecretKey      string `env:"S3_SECRET_KEY"`                          // SecretKey pairs with AccessKeyID.
	Endpoint       string `env:"S3_ENDPOINT"`                            // Endpoint overrides the AWS endpoint for S3-compatible services.
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"` // ForcePathStyle is needed by services such as MinIO.
}

// ConnectS3 builds an S3 client from the default AWS configuration chain,
// overridden by the non-empty fields of cfg.
func ConnectS3(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Join(ErrS3Config, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	}), nil
}
