package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/gophblog/internal/models"
	"github.com/iudanet/gophblog/pkg/api"
)

// DefaultTimeout таймаут HTTP клиента по умолчанию
const DefaultTimeout = 30 * time.Second

// Client представляет HTTP клиент для взаимодействия с бэкендом блога
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option настраивает Client и Uploader
type Option func(*http.Client)

// WithTimeout задает таймаут запросов. 0 отключает таймаут.
func WithTimeout(timeout time.Duration) Option {
	return func(c *http.Client) {
		c.Timeout = timeout
	}
}

// WithTransport подменяет транспорт (используется в тестах)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *http.Client) {
		c.Transport = rt
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(opts...),
	}
}

func newHTTPClient(opts ...Option) *http.Client {
	c := &http.Client{
		Timeout: DefaultTimeout,
		// Настройка обработки редиректов
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Ограничиваем количество редиректов
			if len(via) >= 10 {
				return fmt.Errorf("stopped after 10 redirects")
			}
			// Копируем заголовки Authorization при редиректе
			if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
				req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
			}
			return nil
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/user/login", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.TokenResponse, error) {
	var resp api.TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/user/new", "", req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// GetProfile получает профиль пользователя вместе со списком постов
func (c *Client) GetProfile(ctx context.Context, token string) (*models.Profile, error) {
	var resp api.ProfileResponse
	err := c.doRequest(ctx, http.MethodGet, "/user/profile", token, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	if resp.Data.Blogs == nil {
		resp.Data.Blogs = []models.Post{}
	}
	return &resp.Data, nil
}

// CreatePost создает новый пост и возвращает его в том виде, в каком его сохранил сервер
func (c *Client) CreatePost(ctx context.Context, token string, content models.PostContent) (*models.Post, error) {
	var resp api.PostResponse
	req := api.CreatePostRequest{Content: content}
	err := c.doRequest(ctx, http.MethodPost, "/blog/new", token, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create post request failed: %w", err)
	}
	return &resp.Blog, nil
}

// DeletePost удаляет пост по id
func (c *Client) DeletePost(ctx context.Context, token string, id models.PostID) error {
	req := api.DeletePostRequest{ID: id}
	if err := c.doRequest(ctx, http.MethodDelete, "/blog/delete", token, req, nil); err != nil {
		return fmt.Errorf("delete post request failed: %w", err)
	}
	return nil
}

// UpdatePost заменяет содержимое поста и возвращает содержимое, сохраненное сервером
func (c *Client) UpdatePost(ctx context.Context, token string, id models.PostID, content models.PostContent) (*models.PostContent, error) {
	var resp api.PostResponse
	req := api.UpdatePostRequest{ID: id, Content: content}
	err := c.doRequest(ctx, http.MethodPatch, "/blog/update", token, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update post request failed: %w", err)
	}
	return &resp.Blog.Content, nil
}

// doRequest выполняет HTTP запрос
// token передается в заголовке Authorization, если не пустой
func (c *Client) doRequest(ctx context.Context, method, path, token string, body, result any) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
