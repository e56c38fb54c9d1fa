package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

func TestGenerateCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9')
		}
	}
}

func TestRequestCodeWithoutRedis(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.NewUser(t, db, "ana@example.com", "Ana")
	svc := NewAuthService(userRepo.NewUserRepository(db), nil, "secret", time.Hour, time.Minute)

	_, err := svc.RequestCode(context.Background(), "ana@example.com")
	assert.True(t, errors.Is(err, apperror.ErrInternal))
}
