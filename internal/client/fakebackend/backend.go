// Package fakebackend поднимает в памяти бэкенд блога и сервис загрузки
// для тестов клиента.
package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/pkg/api"
)

// Учетные данные единственного пользователя
const (
	Login    = "alice"
	Password = "secret"
	Username = "Alice"
	Token    = "token-alice"
)

// Date дата всех создаваемых постов
var Date = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// Backend бэкенд блога в памяти
type Backend struct {
	server   *httptest.Server
	fail     map[string]int
	posts    []models.Post
	requests []string
	nextID   int
	mu       sync.Mutex
}

// New запускает сервер, он останавливается вызовом Close
func New() *Backend {
	b := &Backend{fail: make(map[string]int)}
	b.server = httptest.NewServer(b.handler())
	return b
}

// URL адрес сервера
func (b *Backend) URL() string {
	return b.server.URL
}

// Close останавливает сервер
func (b *Backend) Close() {
	b.server.Close()
}

// SetPosts задает список постов пользователя
func (b *Backend) SetPosts(posts ...models.Post) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.posts = append([]models.Post(nil), posts...)
}

// Posts текущий список постов
func (b *Backend) Posts() []models.Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Post(nil), b.posts...)
}

// FailWith заставляет запросы к pattern ("METHOD /path") отвечать статусом status
func (b *Backend) FailWith(pattern string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[pattern] = status
}

// Requests число запросов к pattern
func (b *Backend) Requests(pattern string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, r := range b.requests {
		if r == pattern {
			n++
		}
	}
	return n
}

func (b *Backend) handler() http.Handler {
	mux := http.NewServeMux()

	b.handle(mux, "POST /user/login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Login != Login || req.Password != Password {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, api.TokenResponse{AccessToken: Token})
	})

	b.handle(mux, "POST /user/new", func(w http.ResponseWriter, r *http.Request) {
		var req api.RegisterRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Login == Login || req.Login == "" {
			writeJSON(w, http.StatusConflict, api.ErrorResponse{Error: "login already taken"})
			return
		}
		writeJSON(w, http.StatusCreated, api.TokenResponse{AccessToken: Token})
	})

	b.handle(mux, "GET /user/profile", b.auth(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, api.ProfileResponse{Data: models.Profile{Username: Username, Blogs: b.posts}})
	}))

	b.handle(mux, "POST /blog/new", b.auth(func(w http.ResponseWriter, r *http.Request) {
		var req api.CreatePostRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.nextID++
		post := models.Post{
			ID:      models.NewPostID(strconv.Itoa(b.nextID)),
			Date:    Date,
			Content: req.Content,
		}
		b.posts = append([]models.Post{post}, b.posts...)
		writeJSON(w, http.StatusCreated, api.PostResponse{Blog: post})
	}))

	b.handle(mux, "DELETE /blog/delete", b.auth(func(w http.ResponseWriter, r *http.Request) {
		var req api.DeletePostRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, p := range b.posts {
			if p.ID.Matches(req.ID) {
				b.posts = append(b.posts[:i], b.posts[i+1:]...)
				writeJSON(w, http.StatusOK, api.MessageResponse{Message: "deleted"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
	}))

	b.handle(mux, "PATCH /blog/update", b.auth(func(w http.ResponseWriter, r *http.Request) {
		var req api.UpdatePostRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, p := range b.posts {
			if p.ID.Matches(req.ID) {
				b.posts[i].Content = req.Content
				writeJSON(w, http.StatusOK, api.PostResponse{Blog: b.posts[i]})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "post not found"})
	}))

	b.handle(mux, "POST /upload", func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, api.UploadResponse{Error: "no file"})
			return
		}
		writeJSON(w, http.StatusOK, api.UploadResponse{FileURL: "http://media.local/" + header.Filename})
	})

	return mux
}

// handle регистрирует обработчик, учитывая запрос и заданные отказы
func (b *Backend) handle(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, pattern)
		status, fail := b.fail[pattern]
		b.mu.Unlock()

		if fail {
			writeJSON(w, status, api.ErrorResponse{Error: http.StatusText(status)})
			return
		}
		h(w, r)
	})
}

func (b *Backend) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+Token {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
