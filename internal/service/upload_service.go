package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"droneport/internal/ids"
	"droneport/internal/media/sniffer"
	"droneport/internal/models"
)

var ErrUploadRejected = errors.New("upload rejected")

var allowedExtensions = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

type UploadStore interface {
	Create(ctx context.Context, upload models.Upload) error
	ListByUser(ctx context.Context, userName string, limit int) ([]models.Upload, error)
}

type FileStore interface {
	Save(filename string, data []byte) error
}

type ArchiveSubmitter interface {
	SubmitArchive(ctx context.Context, filename string) (models.Task, error)
}

type UploadService struct {
	uploads  UploadStore
	files    FileStore
	archiver ArchiveSubmitter
	maxBytes int64
	log      zerolog.Logger
}

func NewUploadService(uploads UploadStore, files FileStore, archiver ArchiveSubmitter, maxBytes int64, log zerolog.Logger) *UploadService {
	return &UploadService{
		uploads:  uploads,
		files:    files,
		archiver: archiver,
		maxBytes: maxBytes,
		log:      log,
	}
}

type UploadInput struct {
	User   models.SessionUser
	File   multipart.File
	Header *multipart.FileHeader
}

// Upload validates and persists a single image. Extension, declared MIME type
// and the actual content must all agree on an allowed image format, and the
// size must stay under the ceiling; nothing is written to disk otherwise.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (models.Upload, error) {
	if input.File == nil || input.Header == nil {
		return models.Upload{}, fmt.Errorf("%w: missing file", ErrUploadRejected)
	}

	if input.Header.Size > s.maxBytes {
		return models.Upload{}, fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(input.Header.Filename))
	extMIME, ok := allowedExtensions[ext]
	if !ok {
		return models.Upload{}, fmt.Errorf("%w: extension %q not allowed", ErrUploadRejected, ext)
	}

	declared := sniffer.MimeTypeFromHTTP(http.Header(input.Header.Header))
	if declared != "" && declared != extMIME {
		return models.Upload{}, fmt.Errorf("%w: content type %q not allowed for %q", ErrUploadRejected, declared, ext)
	}

	data, err := io.ReadAll(io.LimitReader(input.File, s.maxBytes+1))
	if err != nil {
		return models.Upload{}, fmt.Errorf("read file: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return models.Upload{}, fmt.Errorf("%w: file exceeds %d bytes", ErrUploadRejected, s.maxBytes)
	}
	if len(data) == 0 {
		return models.Upload{}, fmt.Errorf("%w: empty file", ErrUploadRejected)
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	detected, err := sniffer.DetectHead(head)
	if err != nil || detected.MIME != extMIME {
		return models.Upload{}, fmt.Errorf("%w: content does not match %q", ErrUploadRejected, ext)
	}

	filename := strconv.FormatInt(time.Now().UnixMilli(), 10) + ext

	if err := s.files.Save(filename, data); err != nil {
		return models.Upload{}, fmt.Errorf("store file: %w", err)
	}

	upload := models.Upload{
		ID:        ids.New(),
		UserName:  input.User.Name,
		Filename:  filename,
		MIME:      detected.MIME,
		SizeBytes: int64(len(data)),
	}
	upload.CreatedAt = time.Now().UTC()

	if err := s.uploads.Create(ctx, upload); err != nil {
		return models.Upload{}, fmt.Errorf("save metadata: %w", err)
	}

	if s.archiver != nil {
		if _, err := s.archiver.SubmitArchive(ctx, filename); err != nil {
			s.log.Warn().Err(err).Str("filename", filename).Msg("enqueue archive failed")
		}
	}

	return upload, nil
}

func (s *UploadService) RecentUploads(ctx context.Context, userName string, limit int) ([]models.Upload, error) {
	return s.uploads.ListByUser(ctx, userName, limit)
}
