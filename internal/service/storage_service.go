package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"survey_backend/internal/config"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// 导出文件含答题数据，远端存储只发放临时签名链接
const exportLinkTTL = 24 * time.Hour

// StorageProvider 导出文件的存储后端
type StorageProvider interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Link(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}

// cleanKey 去掉前导斜杠和 ..，防止写出存储目录
func cleanKey(key string) (string, error) {
	k := strings.TrimPrefix(path.Clean("/"+key), "/")
	if k == "" || k == "." {
		return "", fmt.Errorf("%w: empty storage key", util.ErrValidation)
	}
	return k, nil
}

// LocalStorageProvider 写入本地目录，由 gin 静态路由 /exports 提供下载
type LocalStorageProvider struct {
	Root string
}

func (p *LocalStorageProvider) Put(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	dst := filepath.Join(p.Root, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func (p *LocalStorageProvider) Link(_ context.Context, key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return "/exports/" + k, nil
}

func (p *LocalStorageProvider) Remove(_ context.Context, key string) error {
	k, err := cleanKey(key)
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(p.Root, filepath.FromSlash(k)))
}

// MinioStorageProvider MinIO 存储，链接为预签名 GET
type MinioStorageProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioStorageProvider) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (p *MinioStorageProvider) Link(ctx context.Context, key string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	u, err := p.Client.PresignedGetObject(ctx, p.Bucket, key, exportLinkTTL, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (p *MinioStorageProvider) Remove(ctx context.Context, key string) error {
	return p.Client.RemoveObject(ctx, p.Bucket, key, minio.RemoveObjectOptions{})
}

// OSSStorageProvider 阿里云 OSS 存储，链接为签名 URL
type OSSStorageProvider struct {
	Bucket *oss.Bucket
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Bucket: bucket}, nil
}

func (p *OSSStorageProvider) Put(_ context.Context, key string, reader io.Reader, _ int64, contentType string) error {
	return p.Bucket.PutObject(key, reader, oss.ContentType(contentType))
}

func (p *OSSStorageProvider) Link(_ context.Context, key string) (string, error) {
	return p.Bucket.SignURL(key, oss.HTTPGet, int64(exportLinkTTL/time.Second))
}

func (p *OSSStorageProvider) Remove(_ context.Context, key string) error {
	return p.Bucket.DeleteObject(key)
}

// NewStorageProvider 按配置选择存储后端，远端初始化失败时退回本地存储
func NewStorageProvider(cfg *config.Config) StorageProvider {
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			return p
		}
		logger.Log.Warn("minio storage unavailable, falling back to local", zap.Error(err))
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err == nil {
			return p
		}
		logger.Log.Warn("oss storage unavailable, falling back to local", zap.Error(err))
	}
	return &LocalStorageProvider{Root: cfg.Storage.LocalPath}
}
