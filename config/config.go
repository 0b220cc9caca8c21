package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 全局配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Security SecurityConfig `yaml:"security"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig HTTP Server 配置
type ServerConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	Mode            string   `yaml:"mode"`
	ShutdownTimeout int      `yaml:"shutdown_timeout"` // 秒
	CORSOrigins     []string `yaml:"cors_origins"`     // 允许跨域的来源，为空时不设置 Allow-Origin
}

// GetHTTPAddr 获取 HTTP Server 地址
func (s *ServerConfig) GetHTTPAddr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// GetShutdownTimeout 获取优雅关闭超时时间，未配置时默认 10 秒
func (s *ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver    string `yaml:"driver"` // 数据库驱动: mysql, postgres, pgx, sqlite3
	DSN       string `yaml:"dsn"`    // 显式 DSN，设置后忽略下面的字段
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database"`
	SSLMode   string `yaml:"sslmode"`
	Charset   string `yaml:"charset"`
	ParseTime bool   `yaml:"parse_time"`
	Loc       string `yaml:"loc"`
	Path      string `yaml:"path"` // sqlite3 文件路径
}

// GetDSN 获取数据库连接字符串
func (d *DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case "postgres", "pgsql", "pgx":
		sslMode := d.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host,
			d.Port,
			d.Username,
			d.Password,
			d.Database,
			sslMode,
		)
	case "sqlite3", "sqlite":
		return d.Path
	default:
		// clientFoundRows: UPDATE 未改变值时仍返回匹配行数
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s&clientFoundRows=true",
			d.Username,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
			d.Charset,
			d.ParseTime,
			d.Loc,
		)
	}
}

// RedisConfig Redis配置
type RedisConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Password     string `yaml:"password"`
	DB           int    `yaml:"db"`
	DialTimeout  int    `yaml:"dial_timeout"`  // 秒
	ReadTimeout  int    `yaml:"read_timeout"`  // 秒
	WriteTimeout int    `yaml:"write_timeout"` // 秒
	TTL          int    `yaml:"ttl"`           // 用户缓存过期时间，秒
}

// GetAddr 获取Redis地址
func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// GetDialTimeout 获取连接超时时间
func (r *RedisConfig) GetDialTimeout() time.Duration {
	return time.Duration(r.DialTimeout) * time.Second
}

// GetReadTimeout 获取读超时时间
func (r *RedisConfig) GetReadTimeout() time.Duration {
	return time.Duration(r.ReadTimeout) * time.Second
}

// GetWriteTimeout 获取写超时时间
func (r *RedisConfig) GetWriteTimeout() time.Duration {
	return time.Duration(r.WriteTimeout) * time.Second
}

// GetTTL 获取用户缓存过期时间
func (r *RedisConfig) GetTTL() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

// GRPCConfig gRPC 健康检查服务配置
type GRPCConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	CheckInterval int    `yaml:"check_interval"` // 秒
}

// GetAddr 获取 gRPC 监听地址
func (g *GRPCConfig) GetAddr() string {
	return g.Host + ":" + strconv.Itoa(g.Port)
}

// GetCheckInterval 获取存储探活间隔，未配置时默认 15 秒
func (g *GRPCConfig) GetCheckInterval() time.Duration {
	if g.CheckInterval <= 0 {
		return 15 * time.Second
	}
	return time.Duration(g.CheckInterval) * time.Second
}

// SecurityConfig 安全相关配置
type SecurityConfig struct {
	PasswordHashing string `yaml:"password_hashing"` // none, bcrypt
}

// LogConfig 日志配置
type LogConfig struct {
	Level          string `yaml:"level"`
	Output         string `yaml:"output"`
	FilePath       string `yaml:"file_path"`
	HealthFilePath string `yaml:"health_file_path"`
	MaxSize        int    `yaml:"max_size"` // MB
	MaxBackups     int    `yaml:"max_backups"`
}

// Load 加载配置文件
// 同目录或工作目录下的 .env 会先被加载，环境变量覆盖 YAML 中的同名配置
func Load(configPath string) (*Config, error) {
	// .env 不存在不算错误
	_ = godotenv.Load()

	// 读取配置文件
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析YAML
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnv 环境变量覆盖
func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SERVER_PORT 无效: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	return nil
}
