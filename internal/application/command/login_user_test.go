package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apex-hub/apex-campus-hub/internal/application/scope/scopetest"
	"github.com/apex-hub/apex-campus-hub/internal/domain/user"
)

func TestLoginUser(t *testing.T) {
	runner := scopetest.NewRunner()
	account := seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewLoginUserHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), LoginUserCommand{
		Email:    "dana@apex.edu",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, account.ID, result.User.ID)
}

func TestLoginUser_NormalizesEmail(t *testing.T) {
	runner := scopetest.NewRunner()
	seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewLoginUserHandler(runner, testLogger())

	result, err := handler.Handle(context.Background(), LoginUserCommand{
		Email:    "  DANA@Apex.edu ",
		Password: "Secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "dana@apex.edu", result.User.Email.String())
}

func TestLoginUser_BadCredentials(t *testing.T) {
	runner := scopetest.NewRunner()
	seedUser(t, runner, "dana@apex.edu", "Secret123")

	handler := NewLoginUserHandler(runner, testLogger())

	// Wrong password and unknown account fail identically so the
	// response cannot be used to probe which emails are registered.
	_, err := handler.Handle(context.Background(), LoginUserCommand{
		Email:    "dana@apex.edu",
		Password: "WrongPass1",
	})
	assert.ErrorIs(t, err, user.ErrBadCredentials)

	_, err = handler.Handle(context.Background(), LoginUserCommand{
		Email:    "nobody@apex.edu",
		Password: "Secret123",
	})
	assert.ErrorIs(t, err, user.ErrBadCredentials)
}
