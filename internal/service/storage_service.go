package service

import (
	"context"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/logger"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 定义通用存储接口
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalStorageProvider 本地存储实现
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename)))
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// OSSStorageProvider 阿里云OSS存储实现
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}

	if err := bucket.PutObject(filename, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSStorageProvider) Delete(ctx context.Context, filename string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(filename)
}

func (p *OSSStorageProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

// StorageService stores problem attachments through the configured provider.
type StorageService struct {
	Provider    StorageProvider
	MaxFileSize int64
	now         func() time.Time
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("OSS unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	maxMB := cfg.Storage.MaxFileSizeMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &StorageService{Provider: provider, MaxFileSize: maxMB, now: time.Now}
}

// UploadAttachments validates every file before storing any of them. If a
// store fails midway, files already stored in this batch are removed.
func (s *StorageService) UploadAttachments(ctx context.Context, files []*multipart.FileHeader) ([]model.Attachment, error) {
	if len(files) == 0 {
		return nil, util.Validation("No files uploaded")
	}

	for _, fh := range files {
		if err := util.CheckFileSize(fh.Filename, fh.Size, s.MaxFileSize); err != nil {
			return nil, util.Validation(fmt.Sprintf("File %s is too large. Maximum size is %dMB.", fh.Filename, s.MaxFileSize))
		}
		if err := s.checkContent(fh); err != nil {
			return nil, err
		}
	}

	attachments := make([]model.Attachment, 0, len(files))
	for _, fh := range files {
		attachment, err := s.store(ctx, fh)
		if err != nil {
			s.rollback(ctx, attachments)
			return nil, err
		}
		attachments = append(attachments, attachment)
	}
	return attachments, nil
}

func (s *StorageService) checkContent(fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := util.ValidateMimeType(f, fh.Header.Get("Content-Type")); err != nil {
		return util.Validation(err.Error())
	}
	return nil
}

func (s *StorageService) store(ctx context.Context, fh *multipart.FileHeader) (model.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return model.Attachment{}, err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	name := "attachment-" + uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	url, err := s.Provider.Upload(ctx, path.Join(util.AttachmentPrefix, name), f, fh.Size, contentType)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("store %s: %w", fh.Filename, err)
	}

	return model.Attachment{
		FileName:     name,
		OriginalName: fh.Filename,
		FileType:     util.AttachmentType(contentType),
		FileSize:     fh.Size,
		FilePath:     url,
		UploadedAt:   s.now(),
	}, nil
}

func (s *StorageService) rollback(ctx context.Context, stored []model.Attachment) {
	for _, a := range stored {
		if err := s.Provider.Delete(ctx, path.Join(util.AttachmentPrefix, a.FileName)); err != nil {
			logger.Log.Warn("Failed to remove attachment after failed upload",
				zap.String("file", a.FileName), zap.Error(err))
		}
	}
}
