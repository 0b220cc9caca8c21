package rpchandler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"user-service/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(&logger.Config{Level: "fatal", Output: "stdout"}); err != nil {
		panic("初始化日志失败: " + err.Error())
	}
	m.Run()
}

// fakePinger 可切换结果的 db.Pinger
type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakePinger) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func check(t *testing.T, s *HealthService, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.server.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestHealthService_InitialNotServing(t *testing.T) {
	s := NewHealthService(&fakePinger{})

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, UserServiceName))
}

func TestHealthService_Refresh(t *testing.T) {
	pinger := &fakePinger{}
	s := NewHealthService(pinger)

	assert.True(t, s.Refresh(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, UserServiceName))

	pinger.setErr(errors.New("connection refused"))
	assert.False(t, s.Refresh(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, UserServiceName))
}

func TestHealthService_UnknownService(t *testing.T) {
	s := NewHealthService(&fakePinger{})

	_, err := s.server.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "other.Service"})

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestHealthService_Run(t *testing.T) {
	pinger := &fakePinger{}
	s := NewHealthService(pinger)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return pinger.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, s, ""))

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run 未在 ctx 取消后退出")
	}
}

func TestHealthService_Shutdown(t *testing.T) {
	s := NewHealthService(&fakePinger{})
	s.Refresh(context.Background())

	s.Shutdown()

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ""))
	// Shutdown 后刷新不再生效
	s.Refresh(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, s, ""))
}
