package rpchandler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"user-service/pkg/db"

	log "user-service/pkg/logger"
)

// UserServiceName 对外公布的服务名
const UserServiceName = "users.UserService"

// ============================================================================
// HealthService gRPC 健康检查
// ============================================================================

// HealthService 根据数据库可达性维护 grpc.health.v1 状态
type HealthService struct {
	server *health.Server
	pinger db.Pinger
}

// NewHealthService 创建 HealthService，初始状态为 NOT_SERVING
func NewHealthService(pinger db.Pinger) *HealthService {
	s := &HealthService{
		server: health.NewServer(),
		pinger: pinger,
	}
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register 注册到 gRPC Server
func (s *HealthService) Register(grpcServer *grpc.Server) {
	healthpb.RegisterHealthServer(grpcServer, s.server)
}

// Refresh 检查一次数据库并更新状态，返回是否可用
func (s *HealthService) Refresh(ctx context.Context) bool {
	if err := s.pinger.PingContext(ctx); err != nil {
		log.Health.Warn("数据库不可达，gRPC 健康状态置为 NOT_SERVING", zap.Error(err))
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}

	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return true
}

// Run 按间隔刷新状态，ctx 结束后返回
func (s *HealthService) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.refreshWithTimeout(ctx, interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refreshWithTimeout(ctx, interval)
		}
	}
}

func (s *HealthService) refreshWithTimeout(ctx context.Context, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	s.Refresh(pingCtx)
}

// Shutdown 置为 NOT_SERVING 并拒绝后续状态变更
func (s *HealthService) Shutdown() {
	s.server.Shutdown()
}

func (s *HealthService) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.server.SetServingStatus("", status)
	s.server.SetServingStatus(UserServiceName, status)
}
