package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BlobStore 是对象存储的最小接口，返回可公开访问的 URL。
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Remove(ctx context.Context, key string) error
}

// CleanupQueue 在对象无法立即删除时安排稍后删除
type CleanupQueue interface {
	EnqueueBlobRemoval(ctx context.Context, key string) error
}

// UploadInput 描述一个待上传的文件
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileService 负责文件上传与记录。
type FileService struct {
	fileRepo repository.FileRepository
	blobs    BlobStore
	gate     *Gate
	maxBytes int64
	cleanup  CleanupQueue
}

// NewFileService 创建 FileService 实例。maxBytes<=0 表示不限制。
func NewFileService(fileRepo repository.FileRepository, blobs BlobStore, gate *Gate, maxBytes int64) *FileService {
	if fileRepo == nil {
		panic("FileRepository cannot be nil for FileService")
	}
	if blobs == nil {
		panic("BlobStore cannot be nil for FileService")
	}
	if gate == nil {
		panic("Gate cannot be nil for FileService")
	}
	return &FileService{fileRepo: fileRepo, blobs: blobs, gate: gate, maxBytes: maxBytes}
}

// WithCleanupQueue 设置孤儿对象的延迟清理队列
func (s *FileService) WithCleanupQueue(q CleanupQueue) *FileService {
	s.cleanup = q
	return s
}

func (s *FileService) validate(in UploadInput) error {
	if in.Body == nil || in.Size <= 0 {
		return newValidationError("file", "file is required")
	}
	if s.maxBytes > 0 && in.Size > s.maxBytes {
		return newValidationError("file", fmt.Sprintf("file exceeds %d bytes", s.maxBytes))
	}
	return nil
}

// objectKey 生成 "<prefix>/<uuid>-<文件名>"，文件名只保留 base 部分
func objectKey(prefix, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "file"
	}
	return fmt.Sprintf("%s/%s-%s", prefix, uuid.NewString(), base)
}

// Upload 频道成员上传文件到频道，保存文件记录并返回。
func (s *FileService) Upload(ctx context.Context, userID, workspaceID, channelID string, in UploadInput) (*domain.File, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireChannelInWorkspace(ctx, userID, workspaceID, channelID); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "channel_id": channelID, "file_name": in.Name, "size": in.Size})

	key := objectKey("channels/"+channelID, in.Name)
	url, err := s.blobs.Put(ctx, key, in.ContentType, in.Body, in.Size)
	if err != nil {
		logCtx.WithError(err).Error("Failed to store file in blob storage")
		return nil, ErrInternalServer
	}

	cid := channelID
	file := &domain.File{
		Name:         in.Name,
		URL:          url,
		ObjectKey:    key,
		Size:         in.Size,
		ContentType:  in.ContentType,
		ChannelID:    &cid,
		UploadedByID: userID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		logCtx.WithError(err).Error("Failed to save file record, removing stored object")
		s.removeOrphan(ctx, key, logCtx)
		return nil, ErrInternalServer
	}
	logCtx.WithField("file_id", file.ID).Info("File uploaded")
	return file, nil
}

// removeOrphan 立即删除对象，失败时交给清理队列
func (s *FileService) removeOrphan(ctx context.Context, key string, logCtx *logrus.Entry) {
	rmErr := s.blobs.Remove(ctx, key)
	if rmErr == nil {
		return
	}
	if s.cleanup == nil {
		logCtx.WithError(rmErr).Warn("Failed to remove orphaned object")
		return
	}
	if err := s.cleanup.EnqueueBlobRemoval(ctx, key); err != nil {
		logCtx.WithError(err).Warn("Failed to schedule orphaned object removal")
		return
	}
	logCtx.WithField("key", key).Info("Orphaned object removal scheduled")
}

// UploadUnscoped 上传不关联频道的文件 (例如头像)，只返回 URL
func (s *FileService) UploadUnscoped(ctx context.Context, userID string, in UploadInput) (string, error) {
	if userID == "" {
		return "", ErrUnauthenticated
	}
	if err := s.validate(in); err != nil {
		return "", err
	}
	key := objectKey("users/"+userID, in.Name)
	url, err := s.blobs.Put(ctx, key, in.ContentType, in.Body, in.Size)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "file_name": in.Name}).
			WithError(err).Error("Failed to store unscoped upload")
		return "", ErrInternalServer
	}
	return url, nil
}

// List 列出频道内的文件
func (s *FileService) List(ctx context.Context, userID, workspaceID, channelID string) ([]domain.File, error) {
	if _, err := s.gate.RequireChannelInWorkspace(ctx, userID, workspaceID, channelID); err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListByChannel(ctx, channelID)
	if err != nil {
		logrus.WithField("channel_id", channelID).WithError(err).Error("Failed to list files")
		return nil, ErrInternalServer
	}
	return files, nil
}
