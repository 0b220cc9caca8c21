package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"user-service/config"
	"user-service/internal/middleware"
	"user-service/internal/rpchandler"
	"user-service/pkg/container"

	log "user-service/pkg/logger"
)

var (
	configPath = flag.String("config", "config/config.yaml", "配置文件路径")
)

func main() {
	// 解析命令行参数
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("加载配置失败: " + err.Error())
	}

	// 2. 初始化日志
	logConfig := &log.Config{
		Level:          cfg.Log.Level,
		Output:         cfg.Log.Output,
		FilePath:       cfg.Log.FilePath,
		HealthFilePath: cfg.Log.HealthFilePath,
		MaxSize:        cfg.Log.MaxSize,
		MaxBackups:     cfg.Log.MaxBackups,
	}
	if err := log.Init(logConfig); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	defer log.Sync()

	log.Info("User Service 启动中...")
	log.Info("配置加载成功", zap.String("config_path", *configPath))

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	// 3. 初始化依赖注入容器
	if err := container.Init(); err != nil {
		log.Fatal("初始化容器失败", zap.Error(err))
	}
	defer container.Close()

	// 4. 注册配置到容器
	if err := container.Container.Provide(func() *config.Config {
		return cfg
	}); err != nil {
		log.Fatal("注册配置失败", zap.Error(err))
	}
	log.Info("依赖注入容器初始化成功")

	// 5. 从容器获取路由与健康检查服务
	var (
		engine        *gin.Engine
		healthService *rpchandler.HealthService
	)
	if err := container.Invoke(func(e *gin.Engine, hs *rpchandler.HealthService) {
		engine = e
		healthService = hs
	}); err != nil {
		log.Fatal("组装服务失败", zap.Error(err))
	}
	log.Info("路由设置完成")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 6. 启动 gRPC 健康检查服务（可选）
	var grpcServer *grpc.Server
	if cfg.GRPC.Enabled {
		grpcServer = grpc.NewServer(
			grpc.ChainUnaryInterceptor(
				middleware.RecoveryInterceptor(), // 第1层：Panic 恢复（最外层）
				middleware.LoggingInterceptor(),  // 第2层：日志记录
			),
		)
		healthService.Register(grpcServer)

		grpcAddr := cfg.GRPC.GetAddr()
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			log.Fatal("监听失败", zap.String("addr", grpcAddr), zap.Error(err))
		}

		go healthService.Run(ctx, cfg.GRPC.GetCheckInterval())
		go func() {
			log.Info("gRPC 健康检查服务启动成功", zap.String("addr", grpcAddr))
			if err := grpcServer.Serve(lis); err != nil {
				log.Fatal("启动 gRPC Server 失败", zap.Error(err))
			}
		}()
	}

	// 7. 启动 HTTP Server（在 goroutine 中）
	addr := cfg.Server.GetHTTPAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: engine,
	}
	go func() {
		log.Info("HTTP Server 启动成功",
			zap.String("addr", addr),
			zap.String("mode", cfg.Server.Mode))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("启动 HTTP Server 失败", zap.Error(err))
		}
	}()

	// 8. 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("收到退出信号，开始优雅关闭...")

	// 9. 优雅关闭
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GetShutdownTimeout())
	defer cancel()

	if grpcServer != nil {
		healthService.Shutdown()

		// Watch 流不会自行结束，超时后强制关闭
		done := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-shutdownCtx.Done():
			grpcServer.Stop()
		}
		log.Info("gRPC Server 已关闭")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP Server 关闭超时", zap.Error(err))
	}
	log.Info("HTTP Server 已关闭")
}
