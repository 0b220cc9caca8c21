package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv 清空会覆盖配置的环境变量
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SERVER_PORT", "LOG_LEVEL", "DATABASE_DSN", "DATABASE_PASSWORD", "REDIS_PASSWORD"} {
		t.Setenv(key, "")
	}
}

// TestLoad 测试加载配置文件
func TestLoad(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	// 验证服务器配置
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host 期望 '0.0.0.0', 实际 '%s'", cfg.Server.Host)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port 期望 9000, 实际 %d", cfg.Server.Port)
	}
	if len(cfg.Server.CORSOrigins) != 2 {
		t.Errorf("Server.CORSOrigins 期望 2 项, 实际 %v", cfg.Server.CORSOrigins)
	}

	// 验证数据库配置
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Database.Driver 期望 'postgres', 实际 '%s'", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port 期望 5432, 实际 %d", cfg.Database.Port)
	}

	// 验证Redis配置
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled 期望 false")
	}
	if cfg.Redis.GetTTL() != 30*time.Minute {
		t.Errorf("Redis TTL 期望 30m, 实际 %v", cfg.Redis.GetTTL())
	}

	// 验证gRPC配置
	if cfg.GRPC.GetAddr() != "0.0.0.0:9001" {
		t.Errorf("GRPC 地址期望 '0.0.0.0:9001', 实际 '%s'", cfg.GRPC.GetAddr())
	}

	// 验证日志配置
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level 期望 'debug', 实际 '%s'", cfg.Log.Level)
	}
	if cfg.Log.MaxBackups != 5 {
		t.Errorf("Log.MaxBackups 期望 5, 实际 %d", cfg.Log.MaxBackups)
	}
}

// TestLoadEnvOverride 测试环境变量覆盖
func TestLoadEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("DATABASE_PASSWORD", "from-env")

	cfg, err := Load("config.yaml")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port 期望 9100, 实际 %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level 期望 'warn', 实际 '%s'", cfg.Log.Level)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("Database.Password 期望 'from-env', 实际 '%s'", cfg.Database.Password)
	}
}

// TestLoadInvalidPortEnv 测试无效的端口环境变量
func TestLoadInvalidPortEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	if _, err := Load("config.yaml"); err == nil {
		t.Error("期望返回错误，但没有返回")
	}
}

// TestLoadFileNotExist 测试加载不存在的配置文件
func TestLoadFileNotExist(t *testing.T) {
	_, err := Load("not_exist.yaml")
	if err == nil {
		t.Error("期望返回错误，但没有返回")
	}
}

// TestLoadInvalidYAML 测试加载无效的YAML文件
func TestLoadInvalidYAML(t *testing.T) {
	invalidYAML := `
server:
  host: "localhost"
  port: invalid_port
`
	tmpFile, err := os.CreateTemp("", "invalid_*.yaml")
	if err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(invalidYAML); err != nil {
		t.Fatalf("写入临时文件失败: %v", err)
	}
	tmpFile.Close()

	_, err = Load(tmpFile.Name())
	if err == nil {
		t.Error("期望返回错误，但没有返回")
	}
}

// TestDatabaseGetDSN 测试各驱动的DSN
func TestDatabaseGetDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name: "mysql",
			cfg: DatabaseConfig{
				Driver:    "mysql",
				Host:      "127.0.0.1",
				Port:      3306,
				Username:  "root",
				Password:  "root",
				Database:  "users",
				Charset:   "utf8mb4",
				ParseTime: true,
				Loc:       "Local",
			},
			expected: "root:root@tcp(127.0.0.1:3306)/users?charset=utf8mb4&parseTime=true&loc=Local&clientFoundRows=true",
		},
		{
			name: "postgres",
			cfg: DatabaseConfig{
				Driver:   "postgres",
				Host:     "127.0.0.1",
				Port:     5432,
				Username: "postgres",
				Password: "secret",
				Database: "users",
			},
			expected: "host=127.0.0.1 port=5432 user=postgres password=secret dbname=users sslmode=disable",
		},
		{
			name:     "sqlite3",
			cfg:      DatabaseConfig{Driver: "sqlite3", Path: "users.db"},
			expected: "users.db",
		},
		{
			name:     "explicit dsn",
			cfg:      DatabaseConfig{Driver: "pgx", DSN: "postgres://u:p@db/users"},
			expected: "postgres://u:p@db/users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := tt.cfg.GetDSN(); actual != tt.expected {
				t.Errorf("DSN不匹配\n期望: %s\n实际: %s", tt.expected, actual)
			}
		})
	}
}

// TestServerDefaults 测试服务器默认值
func TestServerDefaults(t *testing.T) {
	s := ServerConfig{Host: "localhost", Port: 9000}
	if s.GetHTTPAddr() != "localhost:9000" {
		t.Errorf("HTTP 地址不正确: %s", s.GetHTTPAddr())
	}
	if s.GetShutdownTimeout() != 10*time.Second {
		t.Errorf("ShutdownTimeout 期望 10s, 实际 %v", s.GetShutdownTimeout())
	}

	g := GRPCConfig{}
	if g.GetCheckInterval() != 15*time.Second {
		t.Errorf("CheckInterval 期望 15s, 实际 %v", g.GetCheckInterval())
	}
}

// TestRedisGetTimeouts 测试获取Redis超时配置
func TestRedisGetTimeouts(t *testing.T) {
	redisConfig := RedisConfig{
		Host:         "127.0.0.1",
		Port:         6379,
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}

	if redisConfig.GetAddr() != "127.0.0.1:6379" {
		t.Errorf("Redis地址不匹配: %s", redisConfig.GetAddr())
	}
	if redisConfig.GetDialTimeout() != 5*time.Second {
		t.Errorf("DialTimeout 期望 5s, 实际 %v", redisConfig.GetDialTimeout())
	}
	if redisConfig.GetReadTimeout() != 3*time.Second {
		t.Errorf("ReadTimeout 期望 3s, 实际 %v", redisConfig.GetReadTimeout())
	}
	if redisConfig.GetWriteTimeout() != 3*time.Second {
		t.Errorf("WriteTimeout 期望 3s, 实际 %v", redisConfig.GetWriteTimeout())
	}
}
