// SPDX-License-Identifier: EPL-2.0

package export

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// uploadWorkers bounds concurrent PutObject calls.
const uploadWorkers = 4

// ObjectPutter is the part of the S3 API the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	// PathStyle addresses buckets by path, as MinIO and LocalStack need.
	PathStyle bool `mapstructure:"path_style"`
}

// NewS3Client builds a client from the default credential chain. A
// non-empty Endpoint replaces the AWS endpoint.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var loaders []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

type S3Uploader struct {
	client ObjectPutter
	bucket string
	prefix string
	fs     afero.Fs
	log    *zap.Logger
}

func NewS3Uploader(client ObjectPutter, bucket, prefix string, fsys afero.Fs, logger *zap.Logger) (*S3Uploader, error) {
	if bucket == "" {
		return nil, ErrNoBucket
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &S3Uploader{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		fs:     fsys,
		log:    logger.With(zap.String("component", "s3"), zap.String("bucket", bucket)),
	}, nil
}

// Key maps a local path under root to its object key.
func (u *S3Uploader) Key(root, file string) (string, error) {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}

	return path.Join(u.prefix, filepath.ToSlash(rel)), nil
}

// Upload puts every file, keyed by its path relative to root.
func (u *S3Uploader) Upload(ctx context.Context, root string, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadWorkers)

	for _, file := range files {
		g.Go(func() error {
			key, err := u.Key(root, file)
			if err != nil {
				return err
			}

			body, err := afero.ReadFile(u.fs, file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
				Bucket:      aws.String(u.bucket),
				Key:         aws.String(key),
				Body:        bytes.NewReader(body),
				ContentType: aws.String(contentType(file)),
			})
			if err != nil {
				return fmt.Errorf("uploading %s: %w", key, err)
			}
			u.log.Debug("object uploaded", zap.String("key", key), zap.Int("bytes", len(body)))

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	u.log.Info("upload finished", zap.Int("objects", len(files)))

	return nil
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".parquet":
		return "application/vnd.apache.parquet"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}
