package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/iudanet/gophblog/pkg/api"
)

// UploadFieldName имя поля multipart формы с файлом
const UploadFieldName = "file"

// Uploader отправляет медиафайлы в отдельный сервис загрузки
type Uploader struct {
	httpClient *http.Client
	baseURL    string
}

// NewUploader создает клиент сервиса загрузки медиафайлов
func NewUploader(baseURL string, opts ...Option) *Uploader {
	return &Uploader{
		baseURL:    baseURL,
		httpClient: newHTTPClient(opts...),
	}
}

// Upload загружает файл и возвращает его публичный URL
func (u *Uploader) Upload(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		UploadFieldName, escapeQuotes(filepath.Base(name))))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to write file to multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/upload", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}

	var uploadResp api.UploadResponse
	decodeErr := json.Unmarshal(respBody, &uploadResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Сервис сообщает причину в поле error, если тело вообще JSON
		return "", &UploadError{StatusCode: resp.StatusCode, Message: uploadResp.Error}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", decodeErr)
	}
	if uploadResp.FileURL == "" {
		return "", ErrNoFileURL
	}

	return uploadResp.FileURL, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
