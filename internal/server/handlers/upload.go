package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iudanet/gophblog/pkg/api"
)

const (
	// UploadFieldName имя поля multipart формы с файлом
	UploadFieldName = "file"
	// FilesPath префикс, по которому раздаются загруженные файлы
	FilesPath = "/files/"

	sniffLen         = 512
	multipartMemory  = 8 << 20
	multipartReserve = 1 << 20
)

// ErrUnsupportedMedia возвращается для файлов, не являющихся изображением или видео
var ErrUnsupportedMedia = errors.New("only image and video files are allowed")

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

// UploadHandler принимает медиафайлы и раздает их по публичному URL
type UploadHandler struct {
	logger    *slog.Logger
	dir       string
	publicURL string
	maxSize   int64
}

// NewUploadHandler создает handler загрузки, каталог dir создается при необходимости
func NewUploadHandler(logger *slog.Logger, dir, publicURL string, maxSize int64) (*UploadHandler, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	return &UploadHandler{
		logger:    logger,
		dir:       dir,
		publicURL: strings.TrimRight(publicURL, "/"),
		maxSize:   maxSize,
	}, nil
}

// Upload обрабатывает POST /upload
// Ответ {fileUrl} при успехе, {error} при ошибке
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+multipartReserve)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.sendError(w, "file is too large", http.StatusRequestEntityTooLarge)
			return
		}
		h.logger.WarnContext(ctx, "invalid multipart form", slog.Any("error", err))
		h.sendError(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(UploadFieldName)
	if err != nil {
		h.sendError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if header.Size > h.maxSize {
		h.sendError(w, "file is too large", http.StatusRequestEntityTooLarge)
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		h.logger.ErrorContext(ctx, "failed to read uploaded file", slog.Any("error", err))
		h.sendError(w, "failed to read file", http.StatusBadRequest)
		return
	}
	head = head[:n]

	contentType, err := mediaType(head, header.Header.Get("Content-Type"))
	if err != nil {
		h.logger.WarnContext(ctx, "rejected upload",
			slog.String("filename", header.Filename),
			slog.String("content_type", contentType))
		h.sendError(w, err.Error(), http.StatusUnsupportedMediaType)
		return
	}

	name := uuid.New().String() + fileExt(header.Filename, contentType)
	if err := h.save(name, io.MultiReader(bytes.NewReader(head), file)); err != nil {
		h.logger.ErrorContext(ctx, "failed to save uploaded file", slog.Any("error", err))
		h.sendError(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "file uploaded",
		slog.String("name", name),
		slog.String("content_type", contentType),
		slog.Int64("size", header.Size))

	sendJSON(h.logger, w, api.UploadResponse{FileURL: h.publicURL + FilesPath + name}, http.StatusOK)
}

// Files обрабатывает GET /files/{name}
func (h *UploadHandler) Files(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.dir, name)
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}

func (h *UploadHandler) save(name string, r io.Reader) error {
	path := filepath.Join(h.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

func (h *UploadHandler) sendError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(h.logger, w, api.UploadResponse{Error: message}, statusCode)
}

// mediaType определяет тип содержимого по первым байтам файла.
// Заявленный клиентом тип учитывается, только если сигнатура не распознана.
func mediaType(head []byte, declared string) (string, error) {
	detected := http.DetectContentType(head)
	if isMedia(detected) {
		return detected, nil
	}

	if strings.HasPrefix(detected, "application/octet-stream") && declared != "" {
		mt, _, err := mime.ParseMediaType(declared)
		if err == nil && isMedia(mt) {
			return mt, nil
		}
	}

	return detected, ErrUnsupportedMedia
}

func isMedia(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}

// fileExt возвращает расширение для сохраняемого файла
func fileExt(filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if extPattern.MatchString(ext) {
		return ext
	}

	mt, _, _ := mime.ParseMediaType(contentType)
	if exts, err := mime.ExtensionsByType(mt); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
