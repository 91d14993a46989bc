package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crashlog/internal/apperr"
	"crashlog/internal/auth"
	"crashlog/internal/storage"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	valid := CreateUserInput{
		Email:             "alice@example.com",
		Password:          "secret123",
		ConfirmedPassword: "secret123",
		FirstName:         "Alice",
		LastName:          "Smith",
		Address:           "12 Elm Street",
		PhoneNumber:       "5559876543",
	}

	t.Run("creates account and strips the password", func(t *testing.T) {
		env := newTestEnv(t)

		user, err := env.identity.CreateUser(ctx, valid)
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.NotZero(t, user.CreatedAt)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerUser(t, "alice@example.com")

		_, err := env.identity.CreateUser(ctx, valid)
		require.Error(t, err)
		assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
	})

	t.Run("validation rejects before any write", func(t *testing.T) {
		env := newTestEnv(t)

		cases := []struct {
			name   string
			mutate func(*CreateUserInput)
			want   string
		}{
			{"bad email", func(in *CreateUserInput) { in.Email = "not-an-email" }, "Not a valid email"},
			{"password mismatch", func(in *CreateUserInput) { in.ConfirmedPassword = "different" },
				"Password and confirmed password do not match!"},
			{"short first name", func(in *CreateUserInput) { in.FirstName = "A" }, ""},
			{"short address", func(in *CreateUserInput) { in.Address = "x" }, ""},
			{"short phone", func(in *CreateUserInput) { in.PhoneNumber = "123" }, ""},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				in := valid
				tc.mutate(&in)

				_, err := env.identity.CreateUser(ctx, in)
				require.Error(t, err)
				assert.Equal(t, apperr.CodeValidation, apperr.CodeOf(err))
				if tc.want != "" {
					var appErr *apperr.Error
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tc.want, appErr.Message)
				}

				// nothing was persisted
				_, err = env.store.GetUserByEmail(ctx, in.Email)
				assert.ErrorIs(t, err, storage.ErrNotFound)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.registerUser(t, "carol@example.com")

	t.Run("issues a token carrying email and id", func(t *testing.T) {
		token, err := env.identity.Login(ctx, "carol@example.com", "secret123")
		require.NoError(t, err)

		claims, err := auth.NewJWTManager("test-secret", 0).Validate(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, "carol@example.com", claims.Email)
	})

	t.Run("unknown email is not found", func(t *testing.T) {
		_, err := env.identity.Login(ctx, "nobody@example.com", "secret123")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
	})

	t.Run("wrong password is unauthenticated", func(t *testing.T) {
		_, err := env.identity.Login(ctx, "carol@example.com", "wrong")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	user := env.registerUser(t, "dave@example.com")

	t.Run("returns the calling user", func(t *testing.T) {
		got, err := env.identity.Me(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("empty caller is unauthenticated", func(t *testing.T) {
		_, err := env.identity.Me(ctx, "")
		require.Error(t, err)
		assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
	})
}
