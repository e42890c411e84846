package api

import "github.com/iudanet/gophblog/internal/models"

// CreatePostRequest представляет запрос POST /blog/new
type CreatePostRequest struct {
	Content models.PostContent `json:"content"`
}

// PostResponse представляет ответ с постом (создание и обновление)
type PostResponse struct {
	Blog models.Post `json:"blog"`
}

// DeletePostRequest представляет запрос DELETE /blog/delete
type DeletePostRequest struct {
	ID models.PostID `json:"id"`
}

// UpdatePostRequest представляет запрос PATCH /blog/update
type UpdatePostRequest struct {
	ID      models.PostID      `json:"id"`
	Content models.PostContent `json:"content"`
}

// UploadResponse представляет ответ сервиса загрузки медиафайлов.
// При успехе заполнен FileURL, при ошибке Error.
type UploadResponse struct {
	FileURL string `json:"fileUrl,omitempty"`
	Error   string `json:"error,omitempty"`
}
