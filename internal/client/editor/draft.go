// Package editor хранит ввод нового поста (текст и один медиафайл)
// и превращает его в содержимое поста, загружая медиафайл при необходимости.
package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/iudanet/gophblog/internal/models"
)

//go:generate moq -out uploader_mock.go . Uploader

// Uploader загружает медиафайл и возвращает его URL
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

var (
	// ErrUnsupportedMedia файл не является изображением или видео
	ErrUnsupportedMedia = errors.New("only image and video files are supported")

	// ErrUploadFailed загрузка медиафайла не удалась, пост не создается
	ErrUploadFailed = errors.New("media upload failed")
)

// MediaFile медиафайл, прикрепленный к черновику
type MediaFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Draft черновик нового поста
type Draft struct {
	media *MediaFile
	Text  string
}

// SetText задает текст поста. Текст не обрезается.
func (d *Draft) SetText(text string) {
	d.Text = text
}

// Attach прикрепляет медиафайл, заменяя ранее выбранный
func (d *Draft) Attach(file MediaFile) error {
	if !isSupportedMedia(file.ContentType) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMedia, file.ContentType)
	}
	d.media = &file
	return nil
}

// AttachFile читает файл с диска, определяет его тип и прикрепляет к черновику
func (d *Draft) AttachFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read media file: %w", err)
	}

	return d.Attach(MediaFile{
		Name:        filepath.Base(path),
		ContentType: detectContentType(path, data),
		Data:        data,
	})
}

// Detach убирает прикрепленный медиафайл
func (d *Draft) Detach() {
	d.media = nil
}

// Media возвращает прикрепленный файл или nil
func (d *Draft) Media() *MediaFile {
	return d.media
}

// HasMedia сообщает, прикреплен ли медиафайл
func (d *Draft) HasMedia() bool {
	return d.media != nil
}

// Clear очищает текст и медиафайл
func (d *Draft) Clear() {
	d.Text = ""
	d.media = nil
}

// Content возвращает содержимое поста.
// Если прикреплен медиафайл, он загружается первым и пост становится image
// с URL файла вне зависимости от набранного текста. Ошибка загрузки
// оборачивается в ErrUploadFailed; откат на текст не выполняется.
func (d *Draft) Content(ctx context.Context, uploader Uploader) (models.PostContent, error) {
	if d.media == nil {
		return models.PostContent{
			Type:    models.ContentTypeText,
			Content: d.Text,
		}, nil
	}

	url, err := uploader.Upload(ctx, d.media.Name, d.media.ContentType, bytes.NewReader(d.media.Data))
	if err != nil {
		return models.PostContent{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	return models.PostContent{
		Type:    models.ContentTypeImage,
		Content: url,
	}, nil
}

func detectContentType(path string, data []byte) string {
	// Расширение надежнее сниффинга для видео контейнеров
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}

func isSupportedMedia(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/") || strings.HasPrefix(mediaType, "video/")
}
