package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-service/config"
	log "user-service/pkg/logger"
)

// ErrNil 键不存在
var ErrNil = redis.Nil

// Client 用户缓存所需的 Redis 操作
type Client interface {
	// Del 删除一个或多个键
	Del(ctx context.Context, keys ...string) error

	// SetJSON 序列化为JSON后写入
	SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error

	// GetJSON 读取并反序列化，键不存在时返回 ErrNil
	GetJSON(ctx context.Context, key string, dest interface{}) error

	// Close 关闭Redis连接
	Close() error
}

// redisClient Redis客户端实现
type redisClient struct {
	client *redis.Client
}

// NewClient 包装已有的 go-redis 客户端
func NewClient(client *redis.Client) Client {
	return &redisClient{client: client}
}

// InitRedis 初始化Redis连接
func InitRedis(cfg *config.Config) (Client, error) {
	log.Info("开始初始化Redis连接",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
		zap.Int("db", cfg.Redis.DB),
	)

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.GetAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  cfg.Redis.GetDialTimeout(),
		ReadTimeout:  cfg.Redis.GetReadTimeout(),
		WriteTimeout: cfg.Redis.GetWriteTimeout(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error("Redis连接测试失败", zap.Error(err))
		_ = client.Close()
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Info("Redis连接成功", zap.String("addr", cfg.Redis.GetAddr()))

	return NewClient(client), nil
}

// Del 删除一个或多个键
func (r *redisClient) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// SetJSON 设置JSON格式的值
func (r *redisClient) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("JSON序列化失败: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// GetJSON 获取JSON格式的值并反序列化
func (r *redisClient) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNil
		}
		return err
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("JSON反序列化失败: %w", err)
	}
	return nil
}

// Close 关闭Redis连接
func (r *redisClient) Close() error {
	return r.client.Close()
}
