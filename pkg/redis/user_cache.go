package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"user-service/internal/model"
	log "user-service/pkg/logger"
)

const (
	// UserCacheKeyPrefix 用户缓存键前缀，示例：user:123
	UserCacheKeyPrefix = "user:"

	// DefaultUserCacheTTL 默认用户缓存过期时间（30分钟）
	DefaultUserCacheTTL = 30 * time.Minute
)

// UserCache 用户缓存管理器接口
type UserCache interface {
	// GetUser 获取用户缓存，未命中返回 (nil, nil)
	GetUser(ctx context.Context, userID int64) (*model.User, error)

	// SetUser 设置用户缓存
	SetUser(ctx context.Context, user *model.User) error

	// DeleteUser 删除用户缓存
	DeleteUser(ctx context.Context, userID int64) error
}

// userCache 用户缓存管理器实现
type userCache struct {
	client Client
	ttl    time.Duration
}

// NewUserCache 创建用户缓存管理器
func NewUserCache(client Client, ttl time.Duration) UserCache {
	if ttl <= 0 {
		ttl = DefaultUserCacheTTL
	}
	return &userCache{client: client, ttl: ttl}
}

func userKey(userID int64) string {
	return UserCacheKeyPrefix + strconv.FormatInt(userID, 10)
}

// GetUser 获取用户缓存
func (uc *userCache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	err := uc.client.GetJSON(ctx, userKey(userID), &user)
	if err != nil {
		if errors.Is(err, ErrNil) {
			return nil, nil
		}
		return nil, err
	}

	log.Debug("命中用户缓存", zap.Int64("user_id", userID))
	return &user, nil
}

// SetUser 设置用户缓存
func (uc *userCache) SetUser(ctx context.Context, user *model.User) error {
	if err := uc.client.SetJSON(ctx, userKey(user.UserID), user, uc.ttl); err != nil {
		log.Error("设置用户缓存失败", zap.Error(err), zap.Int64("user_id", user.UserID))
		return err
	}

	log.Debug("设置用户缓存成功", zap.Int64("user_id", user.UserID))
	return nil
}

// DeleteUser 删除用户缓存
func (uc *userCache) DeleteUser(ctx context.Context, userID int64) error {
	if err := uc.client.Del(ctx, userKey(userID)); err != nil {
		log.Error("删除用户缓存失败", zap.Error(err), zap.Int64("user_id", userID))
		return err
	}
	log.Debug("删除用户缓存成功", zap.Int64("user_id", userID))
	return nil
}

// noopUserCache 未启用 Redis 时使用
type noopUserCache struct{}

// NewNoopUserCache 创建空实现的用户缓存
func NewNoopUserCache() UserCache {
	return noopUserCache{}
}

func (noopUserCache) GetUser(context.Context, int64) (*model.User, error) { return nil, nil }
func (noopUserCache) SetUser(context.Context, *model.User) error          { return nil }
func (noopUserCache) DeleteUser(context.Context, int64) error             { return nil }
