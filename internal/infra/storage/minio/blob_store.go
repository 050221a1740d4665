// Package miniostorage 基于 S3 兼容对象存储 (MinIO/S3) 实现 BlobStore。
package miniostorage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Config 对象存储连接参数
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string // 对外访问的基础地址，为空时根据 Endpoint 推导
}

// BlobStore 实现 service.BlobStore
type BlobStore struct {
	cfg    Config
	client *minio.Client
}

// New 创建 BlobStore 实例
func New(cfg Config) (*BlobStore, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("minio: endpoint and bucket are required")
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	cl, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio: create client: %w", err)
	}
	if cfg.PublicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = fmt.Sprintf("%s://%s", scheme, endpoint)
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	return &BlobStore{cfg: cfg, client: cl}, nil
}

// EnsureBucket 桶不存在时创建
func (s *BlobStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("minio: check bucket %s: %w", s.cfg.Bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("minio: create bucket %s: %w", s.cfg.Bucket, err)
		}
		logrus.WithField("bucket", s.cfg.Bucket).Info("Object storage bucket created")
	}
	return nil
}

// Put 上传对象并返回公开 URL
func (s *BlobStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("minio: put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL 返回对象的公开访问地址。键按路径段转义，文件名中的 '#'、'?'、空格等不会截断地址
func (s *BlobStore) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", s.cfg.PublicURL, url.PathEscape(s.cfg.Bucket), strings.Join(segments, "/"))
}

// Remove 删除对象
func (s *BlobStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.cfg.Bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("minio: remove object %s: %w", key, err)
	}
	return nil
}
