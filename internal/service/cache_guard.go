package service

import (
	"sync"
	"sync/atomic"
)

// cacheGuardStripes 版本号分段数
const cacheGuardStripes = 256

// ============================================================================
// cacheGuard 缓存失效保护
// ============================================================================

// cacheGuard 保护用户缓存不被旧数据覆盖
//
// 写操作前后各递增一次用户所在分段的版本号，读路径只有在读取存储前后
// 版本号一致时才回填缓存。写入后删除缓存失败的用户记为 stale，
// 在重新删除成功之前读路径绕过缓存。零值可用。
type cacheGuard struct {
	versions [cacheGuardStripes]atomic.Uint64

	mu    sync.Mutex
	stale map[int64]struct{}
}

func (g *cacheGuard) stripe(id int64) *atomic.Uint64 {
	return &g.versions[uint64(id)%cacheGuardStripes]
}

// version 返回用户所在分段的当前版本号
func (g *cacheGuard) version(id int64) uint64 {
	return g.stripe(id).Load()
}

// bump 使该分段上进行中的回填失效
func (g *cacheGuard) bump(id int64) {
	g.stripe(id).Add(1)
}

// markStale 标记缓存中可能残留旧数据
func (g *cacheGuard) markStale(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stale == nil {
		g.stale = make(map[int64]struct{})
	}
	g.stale[id] = struct{}{}
}

func (g *cacheGuard) isStale(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.stale[id]
	return ok
}

// clearStale 在版本号未变化时清除标记，期间有新的写入则保留
func (g *cacheGuard) clearStale(id int64, version uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.version(id) != version {
		return false
	}
	delete(g.stale, id)
	return true
}
