package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name    string
		login   string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "valid login - lowercase",
			login: "alice",
		},
		{
			name:  "valid login - mixed case with digits",
			login: "Alice2024",
		},
		{
			name:  "valid login - dots, dashes and underscores",
			login: "alice.smith-jr_1",
		},
		{
			name:  "valid login - max length",
			login: strings.Repeat("a", MaxLoginLen),
		},
		{
			name:    "invalid - empty login",
			login:   "",
			wantErr: true,
			errMsg:  "login cannot be empty",
		},
		{
			name:    "invalid - too short (2 chars)",
			login:   "ab",
			wantErr: true,
			errMsg:  "must be at least 3 characters",
		},
		{
			name:    "invalid - too long (33 chars)",
			login:   strings.Repeat("a", MaxLoginLen+1),
			wantErr: true,
			errMsg:  "must not exceed 32 characters",
		},
		{
			name:    "invalid - with space",
			login:   "alice smith",
			wantErr: true,
			errMsg:  "can only contain letters",
		},
		{
			name:    "invalid - with @ symbol",
			login:   "alice@email",
			wantErr: true,
			errMsg:  "can only contain letters",
		},
		{
			name:    "invalid - cyrillic",
			login:   "алиса",
			wantErr: true,
			errMsg:  "can only contain letters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogin(tt.login)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid username - simple",
			username: "Alice",
		},
		{
			name:     "valid username - with spaces",
			username: "Alice Smith",
		},
		{
			name:     "valid username - cyrillic",
			username: "Алиса",
		},
		{
			name:     "valid username - max length in runes",
			username: strings.Repeat("я", MaxUsernameLen),
		},
		{
			name:     "invalid - empty",
			username: "",
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "invalid - only spaces",
			username: "   ",
			wantErr:  true,
			errMsg:   "username cannot be empty",
		},
		{
			name:     "invalid - too long",
			username: strings.Repeat("я", MaxUsernameLen+1),
			wantErr:  true,
			errMsg:   "must not exceed 64 characters",
		},
		{
			name:     "invalid - newline",
			username: "Alice\nSmith",
			wantErr:  true,
			errMsg:   "control characters",
		},
		{
			name:     "invalid - broken utf-8",
			username: "Alice\xff",
			wantErr:  true,
			errMsg:   "valid UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid - min length",
			password: "secret",
		},
		{
			name:     "valid - max length",
			password: strings.Repeat("p", MaxPasswordLen),
		},
		{
			name:     "invalid - empty password",
			password: "",
			wantErr:  true,
			errMsg:   "password cannot be empty",
		},
		{
			name:     "invalid - too short (5 chars)",
			password: "short",
			wantErr:  true,
			errMsg:   "must be at least 6 characters",
		},
		{
			name:     "invalid - longer than bcrypt limit",
			password: strings.Repeat("p", MaxPasswordLen+1),
			wantErr:  true,
			errMsg:   "must not exceed 72 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
