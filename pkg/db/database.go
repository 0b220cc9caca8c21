package db

import (
	"context"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx 驱动
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL 驱动
	_ "github.com/mattn/go-sqlite3" // SQLite 驱动（本地开发/测试）

	"user-service/config"
	log "user-service/pkg/logger"

	"go.uber.org/zap"
)

// Pinger 存储探活接口
type Pinger interface {
	PingContext(ctx context.Context) error
}

// driverName 将配置中的驱动名映射为 database/sql 注册名
func driverName(driver string) (string, error) {
	switch driver {
	case "mysql":
		return "mysql", nil
	case "postgres", "pgsql":
		return "postgres", nil
	case "pgx":
		return "pgx", nil
	case "sqlite3", "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("不支持的数据库驱动: %s", driver)
	}
}

// InitDB 初始化数据库连接（使用 sqlx）
func InitDB(cfg *config.Config) (*sqlx.DB, error) {
	log.Info("开始初始化数据库连接",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database),
	)

	name, err := driverName(cfg.Database.Driver)
	if err != nil {
		log.Error("不支持的数据库驱动", zap.String("driver", cfg.Database.Driver))
		return nil, err
	}

	// sqlx.Connect 内部会 Ping 一次
	db, err := sqlx.Connect(name, cfg.Database.GetDSN())
	if err != nil {
		log.Error("连接数据库失败",
			zap.Error(err),
			zap.String("driver", cfg.Database.Driver),
			zap.String("host", cfg.Database.Host),
		)
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	log.Info("数据库连接成功",
		zap.String("driver", name),
		zap.String("database", cfg.Database.Database),
	)

	return db, nil
}
