package app

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophblog/internal/client/editor"
	"github.com/iudanet/gophblog/internal/client/fakebackend"
	"github.com/iudanet/gophblog/internal/client/iocli"
	"github.com/iudanet/gophblog/internal/client/session"
	"github.com/iudanet/gophblog/internal/models"
)

const (
	testLogin    = fakebackend.Login
	testPassword = fakebackend.Password
)

type testEnv struct {
	app     *App
	backend *fakebackend.Backend
	errOut  *bytes.Buffer
	dbPath  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	backend := fakebackend.New()
	t.Cleanup(backend.Close)

	env := &testEnv{
		backend: backend,
		dbPath:  filepath.Join(t.TempDir(), "client.db"),
	}
	env.reopen(t)
	return env
}

// reopen имитирует перезапуск клиента с тем же файлом базы
func (e *testEnv) reopen(t *testing.T) {
	t.Helper()
	if e.app != nil {
		require.NoError(t, e.app.Close())
	}

	e.errOut = &bytes.Buffer{}
	io := iocli.New(strings.NewReader(""), &bytes.Buffer{}, e.errOut)

	a, err := Open(context.Background(), Config{APIURL: e.backend.URL(), DBPath: e.dbPath, Timeout: 5 * time.Second}, io, nil)
	require.NoError(t, err)
	e.app = a
	t.Cleanup(func() { _ = a.Close() })
}

func TestApp_StartWithoutToken(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, session.Resolving{}, env.app.State())

	state, err := env.app.Start(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Unauthenticated{}, state)
	assert.Zero(t, env.backend.Requests("GET /user/profile"))

	_, err = env.app.Profile()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestApp_LoginPersistsAcrossRestart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Start(ctx)
	require.NoError(t, err)

	state, err := env.app.Login(ctx, session.LoginCredentials{Login: " alice ", Password: "secret"})
	require.NoError(t, err)
	p, ok := session.IsAuthenticated(state)
	require.True(t, ok)
	assert.Equal(t, "Alice", p.Username)
	assert.Equal(t, "alice", env.app.LastLogin(ctx))

	store, err := env.app.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Alice", store.Username())

	env.reopen(t)
	state, err = env.app.Start(ctx)
	require.NoError(t, err)
	_, ok = session.IsAuthenticated(state)
	assert.True(t, ok, "token must survive restart")
	assert.Equal(t, "alice", env.app.LastLogin(ctx))
}

func TestApp_LoginRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Start(ctx)
	require.NoError(t, err)

	state, err := env.app.Login(ctx, session.LoginCredentials{Login: "a", Password: "b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrLoginRejected)
	assert.Equal(t, session.Unauthenticated{}, state)
	assert.Contains(t, env.errOut.String(), session.MessageLoginFailed)
	assert.Empty(t, env.app.LastLogin(ctx))

	env.reopen(t)
	state, err = env.app.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Unauthenticated{}, state)
	assert.Zero(t, env.backend.Requests("GET /user/profile"), "no token must have been persisted")
}

func TestApp_Register(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Register(ctx, session.RegisterCredentials{Username: "Alice", Login: testLogin, Password: "x"})
	assert.ErrorIs(t, err, session.ErrRegisterRejected)
	assert.Contains(t, env.errOut.String(), session.MessageRegisterFailed)

	state, err := env.app.Register(ctx, session.RegisterCredentials{Username: "Bob", Login: "bob", Password: "x"})
	require.NoError(t, err)
	_, ok := session.IsAuthenticated(state)
	assert.True(t, ok)
	assert.Equal(t, "bob", env.app.LastLogin(ctx))
}

func TestApp_PostLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Login(ctx, session.LoginCredentials{Login: testLogin, Password: testPassword})
	require.NoError(t, err)

	store, err := env.app.Profile()
	require.NoError(t, err)

	draft := env.app.Draft()
	draft.SetText("first post")
	_, err = store.Create(ctx, draft)
	require.NoError(t, err)

	require.NoError(t, draft.Attach(editor.MediaFile{Name: "cat.png", ContentType: "image/png", Data: []byte("png")}))
	draft.SetText("ignored")
	post, err := store.Create(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, models.PostContent{Type: models.ContentTypeImage, Content: "http://media.local/cat.png"}, post.Content)
	assert.False(t, env.app.Draft().HasMedia())

	snap := store.Snapshot()
	require.Len(t, snap.Blogs, 2)
	assert.Equal(t, models.NewPostID("2"), snap.Blogs[0].ID)
	assert.Equal(t, models.NewPostID("1"), snap.Blogs[1].ID)

	require.NoError(t, store.Delete(ctx, models.NewPostID("1")))
	err = store.Delete(ctx, models.NewPostID("1"))
	require.Error(t, err)
	assert.Contains(t, env.errOut.String(), "Failed to delete content.")

	// Ошибка изменения не влияет на сессию
	_, ok := session.IsAuthenticated(env.app.State())
	assert.True(t, ok)
	assert.Len(t, store.Snapshot().Blogs, 1)
}

func TestApp_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Login(ctx, session.LoginCredentials{Login: testLogin, Password: testPassword})
	require.NoError(t, err)
	env.app.Draft().SetText("unsent")

	require.NoError(t, env.app.Logout(ctx))
	assert.Equal(t, session.Unauthenticated{}, env.app.State())
	assert.Empty(t, env.app.Draft().Text)

	_, err = env.app.Profile()
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	env.reopen(t)
	state, err := env.app.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Unauthenticated{}, state)
	// Логин запоминается и после выхода
	assert.Equal(t, testLogin, env.app.LastLogin(ctx))
}

func TestApp_StartKeepsStoreAcrossResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.app.Login(ctx, session.LoginCredentials{Login: testLogin, Password: testPassword})
	require.NoError(t, err)
	first, err := env.app.Profile()
	require.NoError(t, err)

	_, err = env.app.Start(ctx)
	require.NoError(t, err)
	second, err := env.app.Profile()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestOpen_InvalidDBPath(t *testing.T) {
	io := iocli.New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	_, err := Open(context.Background(), Config{DBPath: filepath.Join(t.TempDir(), "missing", "dir", "x.db")}, io, nil)
	require.Error(t, err)
}
