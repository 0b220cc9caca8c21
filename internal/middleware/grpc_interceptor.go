package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	log "user-service/pkg/logger"
)

// ============================================================================
// 1. 日志拦截器
// ============================================================================

// LoggingInterceptor 记录所有 RPC 请求的日志
// 健康检查方法写入 Health 日志
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		requestID := incomingRequestID(ctx)

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", info.FullMethod),
			zap.Duration("duration", duration),
		}

		if err != nil {
			log.Error("gRPC 请求失败", append(fields, zap.Error(err))...)
			return resp, err
		}

		if strings.HasPrefix(info.FullMethod, "/grpc.health.v1.Health/") {
			log.Health.Debug("gRPC 健康检查", fields...)
		} else {
			log.Info("gRPC 请求成功", fields...)
		}

		return resp, err
	}
}

// incomingRequestID 读取 metadata 中的请求ID，缺失时生成
func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(strings.ToLower(RequestIDHeader)); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return uuid.NewString()
}

// ============================================================================
// 2. Panic 恢复拦截器
// ============================================================================

// RecoveryInterceptor 捕获 Panic 并返回错误
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("gRPC Panic 恢复",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
				)
				err = status.Error(codes.Internal, "Internal Server Error")
			}
		}()

		return handler(ctx, req)
	}
}
