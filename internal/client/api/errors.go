package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iudanet/gophblog/pkg/api"
)

// StatusError возвращается, когда сервер ответил статусом вне диапазона 2xx
type StatusError struct {
	Message    string
	Body       string
	StatusCode int
}

func newStatusError(statusCode int, body []byte) *StatusError {
	e := &StatusError{StatusCode: statusCode, Body: string(body)}

	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		e.Message = errResp.Message
		if e.Message == "" {
			e.Message = errResp.Error
		}
	}
	return e
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// StatusCode извлекает HTTP статус из цепочки ошибок.
// Второе значение false означает, что до сервера не дошли или ответ не удалось прочитать.
func StatusCode(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// UploadError возвращается сервисом загрузки при неуспешном ответе
type UploadError struct {
	Message    string // текст из поля error ответа, может быть пустым
	StatusCode int
}

func (e *UploadError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upload failed (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upload failed with status %d", e.StatusCode)
}

// ErrNoFileURL сервис загрузки ответил успехом, но не вернул ссылку на файл
var ErrNoFileURL = errors.New("upload response has no file url")
