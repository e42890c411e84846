package session

import "github.com/iudanet/gophblog/internal/models"

// State состояние сессии. Реализуется ровно тремя типами:
// Resolving, Unauthenticated и Authenticated.
type State interface {
	String() string
	sessionState()
}

// Resolving сессия еще не определена (начальное состояние)
type Resolving struct{}

// Unauthenticated пользователь не авторизован, нужен вход или регистрация
type Unauthenticated struct{}

// Authenticated пользователь авторизован, профиль загружен
type Authenticated struct {
	Profile *models.Profile
}

func (Resolving) sessionState()       {}
func (Unauthenticated) sessionState() {}
func (Authenticated) sessionState()   {}

func (Resolving) String() string       { return "resolving" }
func (Unauthenticated) String() string { return "unauthenticated" }
func (Authenticated) String() string   { return "authenticated" }

// IsAuthenticated возвращает профиль, если состояние Authenticated
func IsAuthenticated(s State) (*models.Profile, bool) {
	auth, ok := s.(Authenticated)
	if !ok || auth.Profile == nil {
		return nil, false
	}
	return auth.Profile, true
}
