package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"time"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/imageprocessor"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/metrics"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
)

// FileRelay принимает загруженный файл, проверяет его и пересылает в
// хранилище. В сущностях сохраняется только возвращенный URL и имя файла.
type FileRelay interface {
	Upload(ctx context.Context, file *multipart.FileHeader, kind string) (*dto.StoredFile, error)
	// Delete - best-effort: ошибки логируются и не возвращаются
	Delete(ctx context.Context, urls ...string)
}

type fileRelay struct {
	storage   storage.Storage
	rules     map[string]config.FileRule
	processor *imageprocessor.Processor

	mu       sync.Mutex
	lastName int64
	now      func() time.Time
}

func NewFileRelay(store storage.Storage, rules map[string]config.FileRule, processor *imageprocessor.Processor) FileRelay {
	return &fileRelay{
		storage:   store,
		rules:     rules,
		processor: processor,
		now:       time.Now,
	}
}

func (r *fileRelay) Upload(ctx context.Context, file *multipart.FileHeader, kind string) (*dto.StoredFile, error) {
	rule, ok := r.rules[kind]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown upload kind: %s", kind))
	}
	if file == nil {
		return nil, apperrors.ErrFileRequired
	}

	data, ext, mimeType, err := r.validateFile(file, rule)
	if err != nil {
		metrics.RecordUpload(kind, metrics.ResultRejected)
		logger.CtxWarn(ctx, "upload rejected", "kind", kind, "filename", file.Filename, "size", file.Size, "reason", err.Error())
		return nil, err
	}

	filename := fmt.Sprintf("%s-%d.%s", rule.Kind, r.nextStamp(), ext)
	key := path.Join(rule.Folder, filename)

	if err := r.storage.Save(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		metrics.RecordUpload(kind, metrics.ResultFailed)
		return nil, apperrors.UpstreamError("storage", err)
	}

	url, err := r.storage.GetURL(ctx, key)
	if err != nil {
		metrics.RecordUpload(kind, metrics.ResultFailed)
		r.deleteKey(ctx, key)
		return nil, apperrors.UpstreamError("storage", err)
	}

	stored := &dto.StoredFile{
		Filename: filename,
		Key:      key,
		URL:      url,
		MimeType: mimeType,
		Size:     int64(len(data)),
	}

	if kind == config.KindArtwork && r.processor != nil {
		stored.ThumbnailURL = r.saveThumbnail(ctx, key, data)
	}

	metrics.RecordUpload(kind, metrics.ResultOK)
	logger.CtxInfo(ctx, "file uploaded", "kind", kind, "key", key, "size", stored.Size)
	return stored, nil
}

func (r *fileRelay) Delete(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}

		key, err := r.storage.KeyFromURL(url)
		if err != nil {
			metrics.RecordRemoteDeleteFailure()
			logger.CtxWarn(ctx, "cannot derive storage key", "url", url, "error", err.Error())
			continue
		}
		r.deleteKey(ctx, key)
	}
}

func (r *fileRelay) deleteKey(ctx context.Context, key string) {
	if err := r.storage.Delete(ctx, key); err != nil {
		metrics.RecordRemoteDeleteFailure()
		logger.CtxWithError(ctx, "failed to delete file from storage", err, "key", key)
		return
	}
	logger.CtxInfo(ctx, "file deleted from storage", "key", key)
}

// validateFile проверяет расширение, размер и реальный тип содержимого
func (r *fileRelay) validateFile(file *multipart.FileHeader, rule config.FileRule) ([]byte, string, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Filename), "."))
	if !contains(rule.Extensions, ext) {
		return nil, "", "", apperrors.UploadRejected(rejectMessage(rule))
	}

	if rule.MaxSize > 0 && file.Size > rule.MaxSize {
		return nil, "", "", apperrors.UploadRejected(tooLargeMessage(rule))
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", "", apperrors.NewBadRequestError("Failed to read uploaded file")
	}
	defer src.Close()

	reader := io.Reader(src)
	if rule.MaxSize > 0 {
		reader = io.LimitReader(src, rule.MaxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", "", apperrors.NewBadRequestError("Failed to read uploaded file")
	}
	if rule.MaxSize > 0 && int64(len(data)) > rule.MaxSize {
		return nil, "", "", apperrors.UploadRejected(tooLargeMessage(rule))
	}
	if len(data) == 0 {
		return nil, "", "", apperrors.UploadRejected("Uploaded file is empty")
	}

	detected := mimetype.Detect(data)
	allowed := false
	for _, m := range rule.MimePrefixes {
		if detected.Is(m) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, "", "", apperrors.UploadRejected(rejectMessage(rule))
	}

	// сигнатура совпала, но заголовок картинки битый
	if rule.Kind == config.KindArtwork {
		if _, _, err := imageprocessor.GetImageDimensions(bytes.NewReader(data)); err != nil {
			return nil, "", "", apperrors.UploadRejected(rejectMessage(rule))
		}
	}

	return data, ext, detected.String(), nil
}

// saveThumbnail рендерит превью рядом с оригиналом. Ошибка не прерывает загрузку.
func (r *fileRelay) saveThumbnail(ctx context.Context, key string, data []byte) string {
	thumb, err := r.processor.Thumbnail(bytes.NewReader(data))
	if err != nil {
		logger.CtxWarn(ctx, "thumbnail not generated", "key", key, "error", err.Error())
		return ""
	}

	thumbKey := strings.TrimSuffix(key, path.Ext(key)) + "_thumb." + thumb.Ext
	if err := r.storage.Save(ctx, thumbKey, bytes.NewReader(thumb.Data), thumb.ContentType); err != nil {
		logger.CtxWithError(ctx, "failed to save thumbnail", err, "key", thumbKey)
		return ""
	}

	url, err := r.storage.GetURL(ctx, thumbKey)
	if err != nil {
		logger.CtxWithError(ctx, "failed to build thumbnail url", err, "key", thumbKey)
		return ""
	}
	return url
}

// nextStamp - unix millis, строго возрастающие в пределах процесса,
// чтобы две загрузки в одну миллисекунду не получили одно имя
func (r *fileRelay) nextStamp() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	stamp := r.now().UnixMilli()
	if stamp <= r.lastName {
		stamp = r.lastName + 1
	}
	r.lastName = stamp
	return stamp
}

func rejectMessage(rule config.FileRule) string {
	if rule.Kind == config.KindResume {
		return "Only PDF files are allowed"
	}
	return fmt.Sprintf("Only image files (%s) are allowed", strings.Join(rule.Extensions, ", "))
}

func tooLargeMessage(rule config.FileRule) string {
	return fmt.Sprintf("File is too large (max %d MB)", rule.MaxSize/(1024*1024))
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
