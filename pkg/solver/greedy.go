// Package solver 提供 0/1 整数规划的求解器抽象
package solver

import (
	"context"
	"time"

	"github.com/zhipai/zhipai/pkg/logger"
)

// Greedy 贪心引擎
// 按目标系数优先下探，找到第一个可行解即返回，不证明最优
// 搜索树穷尽仍未找到可行解时可证明不可行
type Greedy struct{}

// NewGreedy 创建贪心引擎
func NewGreedy() *Greedy {
	return &Greedy{}
}

// Name 返回引擎名称
func (e *Greedy) Name() string {
	return ProviderGreedy
}

// Solve 在时间预算内求解模型
func (e *Greedy) Solve(ctx context.Context, m *Model, budget time.Duration) (*Solution, error) {
	sol := runSearch(ctx, m, budget, true)
	logger.Debug().
		Str("engine", e.Name()).
		Str("status", string(sol.Status)).
		Dur("duration", sol.Duration).
		Msg("贪心搜索结束")
	return sol, nil
}
