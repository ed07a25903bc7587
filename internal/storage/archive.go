package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"droneport/internal/config"
)

// Archiver offloads accepted uploads to an S3-compatible object store. The
// local upload directory stays authoritative; archival is best effort and
// driven by worker tasks.
type Archiver struct {
	client *minio.Client
	cfg    config.ArchiveConfig
}

func NewArchiver(cfg config.ArchiveConfig) (*Archiver, error) {
	endpoint := cfg.Endpoint
	useSSL := cfg.UseSSL

	if strings.HasPrefix(endpoint, "http") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("parse endpoint: %w", err)
		}
		endpoint = u.Host
		useSSL = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: useSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}

	return &Archiver{
		client: client,
		cfg:    cfg,
	}, nil
}

func (a *Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("bucket exists %s: %w", a.cfg.Bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.cfg.Bucket, minio.MakeBucketOptions{Region: a.cfg.Region}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.cfg.Bucket, err)
		}
	}
	return nil
}

func (a *Archiver) Put(ctx context.Context, objectKey string, file *os.File, contentType string) error {
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat upload: %w", err)
	}

	_, err = a.client.PutObject(ctx, a.cfg.Bucket, objectKey, file, info.Size(), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}
