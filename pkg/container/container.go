package container

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"user-service/config"
	"user-service/internal/handler"
	"user-service/internal/repository"
	"user-service/internal/router"
	"user-service/internal/rpchandler"
	"user-service/internal/service"
	"user-service/pkg/db"
	"user-service/pkg/redis"

	log "user-service/pkg/logger"
)

// Container 全局依赖注入容器
var Container *dig.Container

var (
	closersMu sync.Mutex
	closers   []func() error
)

// Init 初始化依赖注入容器
// *config.Config 由调用方在 Init 之后 Provide
func Init() error {
	Container = dig.New()

	closersMu.Lock()
	closers = nil
	closersMu.Unlock()

	// 注册所有依赖
	if err := registerProviders(); err != nil {
		return err
	}

	return nil
}

// registerProviders 注册所有提供者
// config → DB → cache → repository → service → handlers → router → health
func registerProviders() error {
	providers := []interface{}{
		provideDB,
		func(d *sqlx.DB) db.Pinger { return d },
		provideUserCache,
		func(cfg *config.Config) (service.PasswordHasher, error) {
			return service.NewPasswordHasher(cfg.Security.PasswordHashing)
		},
		repository.NewUserRepository,
		service.NewUserService,
		handler.NewUserHandler,
		handler.NewHealthHandler,
		func(uh *handler.UserHandler, hh *handler.HealthHandler, cfg *config.Config) *gin.Engine {
			return router.SetupRouter(uh, hh, cfg.Server.CORSOrigins)
		},
		rpchandler.NewHealthService,
	}

	for _, p := range providers {
		if err := Container.Provide(p); err != nil {
			return err
		}
	}
	return nil
}

func provideDB(cfg *config.Config) (*sqlx.DB, error) {
	d, err := db.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	addCloser(d.Close)
	return d, nil
}

// provideUserCache 未启用或连接失败时使用空缓存，不影响启动
func provideUserCache(cfg *config.Config) redis.UserCache {
	if !cfg.Redis.Enabled {
		log.Info("Redis 未启用，用户缓存关闭")
		return redis.NewNoopUserCache()
	}

	client, err := redis.InitRedis(cfg)
	if err != nil {
		log.Warn("Redis 不可用，用户缓存关闭", zap.Error(err))
		return redis.NewNoopUserCache()
	}
	addCloser(client.Close)

	return redis.NewUserCache(client, cfg.Redis.GetTTL())
}

func addCloser(fn func() error) {
	closersMu.Lock()
	defer closersMu.Unlock()
	closers = append(closers, fn)
}

// Invoke 调用函数，自动注入依赖
func Invoke(function interface{}) error {
	return Container.Invoke(function)
}

// Close 按创建的逆序释放资源（数据库、Redis）
func Close() {
	closersMu.Lock()
	defer closersMu.Unlock()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Warn("释放资源失败", zap.Error(err))
		}
	}
	closers = nil
}
