package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"user-service/internal/model"
	"user-service/pkg/logger"
)

func TestMain(m *testing.M) {
	// 测试环境只输出 Fatal 级别日志
	if err := logger.Init(&logger.Config{Level: "fatal", Output: "stdout"}); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	m.Run()
}

// MockClient 模拟 Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	if raw := args.String(1); raw != "" {
		if err := json.Unmarshal([]byte(raw), dest); err != nil {
			return err
		}
	}
	return args.Error(0)
}

func (m *MockClient) Close() error {
	return m.Called().Error(0)
}

func TestUserCache_GetUserHit(t *testing.T) {
	client := new(MockClient)
	cache := NewUserCache(client, time.Minute)
	ctx := context.Background()

	client.On("GetJSON", ctx, "user:7", mock.Anything).
		Return(nil, `{"user_id":7,"username":"alice","email_id":"a@x.com","first_name":"Alice","last_name":null}`)

	user, err := cache.GetUser(ctx, 7)

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "alice", user.Username)
	assert.Nil(t, user.LastName)
	client.AssertExpectations(t)
}

func TestUserCache_GetUserMiss(t *testing.T) {
	client := new(MockClient)
	cache := NewUserCache(client, time.Minute)
	ctx := context.Background()

	client.On("GetJSON", ctx, "user:8", mock.Anything).Return(ErrNil, "")

	user, err := cache.GetUser(ctx, 8)

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserCache_GetUserError(t *testing.T) {
	client := new(MockClient)
	cache := NewUserCache(client, time.Minute)
	ctx := context.Background()

	client.On("GetJSON", ctx, "user:9", mock.Anything).Return(errors.New("i/o timeout"), "")

	user, err := cache.GetUser(ctx, 9)

	assert.Error(t, err)
	assert.Nil(t, user)
}

func TestUserCache_SetAndDelete(t *testing.T) {
	client := new(MockClient)
	cache := NewUserCache(client, 0)
	ctx := context.Background()
	user := &model.User{UserID: 3, Username: "bob"}

	client.On("SetJSON", ctx, "user:3", user, DefaultUserCacheTTL).Return(nil)
	client.On("Del", ctx, []string{"user:3"}).Return(nil)

	require.NoError(t, cache.SetUser(ctx, user))
	require.NoError(t, cache.DeleteUser(ctx, 3))
	client.AssertExpectations(t)
}

func TestNoopUserCache(t *testing.T) {
	cache := NewNoopUserCache()
	ctx := context.Background()

	user, err := cache.GetUser(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, cache.SetUser(ctx, &model.User{UserID: 1}))
	assert.NoError(t, cache.DeleteUser(ctx, 1))
}
