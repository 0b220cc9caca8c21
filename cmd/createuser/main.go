package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"user-service/config"
	"user-service/internal/apperror"
	"user-service/internal/dto"
	"user-service/internal/service"
	"user-service/pkg/container"
	"user-service/pkg/logger"
)

var (
	configPath = flag.String("config", "config/config.yaml", "配置文件路径")
	emailID    = flag.String("email", "test@example.com", "邮箱")
	username   = flag.String("username", "testuser", "用户名")
	password   = flag.String("password", "password", "密码")
	firstName  = flag.String("first-name", "Test", "名")
	lastName   = flag.String("last-name", "", "姓，为空时不设置")
)

func main() {
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic("加载配置失败: " + err.Error())
	}

	// 2. 初始化日志
	logConfig := &logger.Config{
		Level:    cfg.Log.Level,
		Output:   "stdout",
		FilePath: cfg.Log.FilePath,
	}
	if err := logger.Init(logConfig); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("开始创建用户...")

	// 3. 初始化依赖注入容器
	if err := container.Init(); err != nil {
		logger.Fatal("初始化容器失败", zap.Error(err))
	}
	defer container.Close()

	// 4. 注册配置到容器
	if err := container.Container.Provide(func() *config.Config {
		return cfg
	}); err != nil {
		logger.Fatal("注册配置失败", zap.Error(err))
	}

	// 5. 获取 UserService，密码按 security.password_hashing 处理
	var userService service.UserService
	if err := container.Invoke(func(svc service.UserService) {
		userService = svc
	}); err != nil {
		logger.Fatal("获取 UserService 失败", zap.Error(err))
	}

	createDTO := &dto.CreateUserDTO{
		EmailID:   *emailID,
		Username:  *username,
		Password:  *password,
		FirstName: *firstName,
	}
	if *lastName != "" {
		createDTO.LastName = lastName
	}

	// 6. 创建用户并查询ID
	ctx := context.Background()
	result, err := userService.CreateUser(ctx, createDTO)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建用户失败 (%s): %s\n", apperror.KindOf(err), apperror.MessageOf(err))
		os.Exit(1)
	}

	idResult, err := userService.GetUserID(ctx, *username)
	if err != nil {
		logger.Fatal("查询用户ID失败", zap.Error(err))
	}

	fmt.Println("=========================================")
	fmt.Println(result.Detail)
	fmt.Println("=========================================")
	fmt.Printf("用户ID:  %v\n", idResult.Data)
	fmt.Printf("用户名:  %s\n", *username)
	fmt.Printf("邮箱:    %s\n", *emailID)
	fmt.Println("=========================================")
	fmt.Printf("\n查询命令：\n")
	fmt.Printf("curl http://%s/users/%v\n\n", cfg.Server.GetHTTPAddr(), idResult.Data)
}
