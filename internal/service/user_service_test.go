package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dakshesh8090/Agri-All-round/internal/repository"
)

func TestGetProfile(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewUserService(repository.NewUserRepository(db))

	got, err := s.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = s.GetProfile(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewUserService(repository.NewUserRepository(db))

	updated, err := s.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{
		Name:  "New Name",
		Phone: "13900000000",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "13900000000", *updated.Phone)

	// 邮箱不可通过资料接口修改
	assert.Equal(t, user.Email, updated.Email)
}

func TestUpdateProfileNoFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := NewUserService(repository.NewUserRepository(db))

	// 空请求直接返回当前资料
	got, err := s.UpdateProfile(context.Background(), user.ID, &UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, user.Name, got.Name)
}
