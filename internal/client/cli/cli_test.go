package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophblog/internal/client/fakebackend"
	"github.com/iudanet/gophblog/internal/client/iocli"
	"github.com/iudanet/gophblog/internal/models"
)

type testEnv struct {
	backend *fakebackend.Backend
	dbPath  string
}

type result struct {
	stdout string
	stderr string
	code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := fakebackend.New()
	t.Cleanup(backend.Close)
	return &testEnv{
		backend: backend,
		dbPath:  filepath.Join(t.TempDir(), "client.db"),
	}
}

// run выполняет команду как отдельный запуск процесса
func (e *testEnv) run(t *testing.T, input string, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer
	c := New(iocli.New(strings.NewReader(input), &stdout, &stderr), BuildInfo{Version: "test"})
	c.logOut = io.Discard

	full := append([]string{"--api-url", e.backend.URL(), "--db", e.dbPath, "--timeout", "5s"}, args...)
	code := c.Run(context.Background(), full)

	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	res := e.run(t, "", "login", "--login", fakebackend.Login, "--password", fakebackend.Password)
	require.Equal(t, 0, res.code, res.stderr)
}

func TestStatus_NotLoggedIn(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "", "status")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Please authorize.")
	assert.Zero(t, env.backend.Requests("GET /user/profile"))
}

func TestLogin_Prompts(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, " alice \nsecret\n", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Login: ")
	assert.Contains(t, res.stdout, "Password: ")
	assert.Contains(t, res.stdout, "Hello, Alice!")

	// Последний логин предлагается по умолчанию
	res = env.run(t, "\nsecret\n", "login")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Login [alice]: ")
	assert.Contains(t, res.stdout, "Hello, Alice!")

	res = env.run(t, "", "status")
	assert.Contains(t, res.stdout, "Hello, Alice!")
}

func TestLogin_Rejected(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "", "login", "--login", "a", "--password", "b")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "! Login failed! Please check your credentials.\n", res.stderr)

	res = env.run(t, "", "status")
	assert.Contains(t, res.stdout, "Please authorize.")
	assert.Zero(t, env.backend.Requests("GET /user/profile"), "token must not be stored")
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	res := env.run(t, "Bob\nbob\npw\n", "register")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Username: ")
	assert.Contains(t, res.stdout, "Hello, Alice!")

	res = env.run(t, "", "register", "--username", "x", "--login", fakebackend.Login, "--password", "p")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "! Registration failed! Please try again.\n", res.stderr)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "logout")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Logged out.")

	res = env.run(t, "", "posts")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not authenticated. Please run 'gophblog login' first")
}

func TestPosts_RequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range [][]string{
		{"posts"},
		{"list"},
		{"post", "add", "--text", "hi"},
		{"post", "edit", "1", "--text", "hi"},
		{"post", "delete", "1"},
	} {
		res := env.run(t, "", args...)
		assert.Equal(t, 1, res.code, args)
		assert.Contains(t, res.stderr, "not authenticated", args)
	}
	assert.Zero(t, env.backend.Requests("POST /blog/new"))
}

func TestPosts_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "posts")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "=== Alice's Blog ===")
	assert.Contains(t, res.stdout, "No posts yet.")
}

func TestPostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "post", "add", "--text", "hello world")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Post 1 created.")
	assert.Contains(t, res.stdout, "hello world")

	mediaPath := filepath.Join(t.TempDir(), "cat.png")
	require.NoError(t, os.WriteFile(mediaPath, []byte("\x89PNG\r\n\x1a\n"), 0o600))

	res = env.run(t, "", "post", "add", "--text", "ignored", "--file", mediaPath)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Media: http://media.local/cat.png")

	res = env.run(t, "", "posts")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Less(t, strings.Index(res.stdout, "[2]"), strings.Index(res.stdout, "[1]"), "newest first")
	assert.Contains(t, res.stdout, "2 post(s)")

	res = env.run(t, "changed\n", "post", "edit", "2")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Current: http://media.local/cat.png")
	assert.Contains(t, res.stdout, "Post 2 updated.")

	posts := env.backend.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, models.PostContent{Type: models.ContentTypeText, Content: "changed"}, posts[0].Content)

	res = env.run(t, "", "post", "delete", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Post 1 deleted.")
	assert.Len(t, env.backend.Posts(), 1)
}

func TestPostAdd_EmptyTextFlag(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "post", "add", "--text", "")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotContains(t, res.stdout, "Text: ")

	posts := env.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, models.PostContent{Type: models.ContentTypeText, Content: ""}, posts[0].Content)
}

// Текст поста из приглашения сохраняется вместе с пробелами по краям
func TestPostAdd_PromptKeepsText(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "  indented body  \n", "post", "add")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Text: ")

	posts := env.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, models.PostContent{Type: models.ContentTypeText, Content: "  indented body  "}, posts[0].Content)

	res = env.run(t, "\tnew body \n", "post", "edit", "1")
	require.Equal(t, 0, res.code, res.stderr)

	posts = env.backend.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "\tnew body ", posts[0].Content.Content)
}

func TestShell_KeepsPostText(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "add   spaced  \nadd\n\ttabbed\t\n edit 1  new text \nquit\n", "shell")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stderr)

	posts := env.backend.Posts()
	require.Len(t, posts, 2)
	assert.Equal(t, "\ttabbed\t", posts[0].Content.Content)
	assert.Equal(t, " new text ", posts[1].Content.Content)
}

func TestPostAdd_UnsupportedFile(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain"), 0o600))

	res := env.run(t, "", "post", "add", "--file", path)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "only image and video files are supported")
	assert.Zero(t, env.backend.Requests("POST /upload"))
}

func TestPostAdd_UploadRejected(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.FailWith("POST /upload", http.StatusRequestEntityTooLarge)

	path := filepath.Join(t.TempDir(), "big.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o600))

	res := env.run(t, "", "post", "add", "--text", "fallback", "--file", path)
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "! Failed to upload media file.Request Entity Too Large\n", res.stderr)
	assert.Zero(t, env.backend.Requests("POST /blog/new"))
}

func TestPostDelete_Rejected(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "post", "delete", "42")
	assert.Equal(t, 1, res.code)
	assert.Equal(t, "! Failed to delete content.\n", res.stderr)

	// Сессия не сбрасывается после ошибки изменения
	res = env.run(t, "", "status")
	assert.Contains(t, res.stdout, "Hello, Alice!")
}

func TestPostEdit_UnknownPost(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	res := env.run(t, "", "post", "edit", "404", "--text", "x")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "post 404 not found")
	assert.Zero(t, env.backend.Requests("PATCH /blog/update"))
}

func TestProfileRejected_ClearsToken(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)
	env.backend.FailWith("GET /user/profile", http.StatusUnauthorized)

	res := env.run(t, "", "status")
	assert.Contains(t, res.stdout, "Please authorize.")
	require.Equal(t, 2, env.backend.Requests("GET /user/profile"))

	// Токен удален, повторной попытки загрузить профиль нет
	res = env.run(t, "", "status")
	assert.Contains(t, res.stdout, "Please authorize.")
	assert.Equal(t, 2, env.backend.Requests("GET /user/profile"))
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	c := New(iocli.New(strings.NewReader(""), &stdout, io.Discard), BuildInfo{
		Version:   "1.2.3",
		BuildDate: "2024-01-01",
		GitCommit: "abc123",
	})

	require.Equal(t, 0, c.Run(context.Background(), []string{"version"}))
	assert.Contains(t, stdout.String(), "Version:    1.2.3")
	assert.Contains(t, stdout.String(), "Git Commit: abc123")
}

func TestInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	res := env.run(t, "", "status", "--api-url", "not a url")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "invalid configuration")
}
