// Package solver 提供 0/1 整数规划的求解器抽象
package solver

import (
	"context"
	"time"

	"github.com/zhipai/zhipai/pkg/logger"
)

// BranchAndBound 分支定界引擎
// 穷尽搜索树即证明最优或无可行解；时间预算耗尽时返回当前最好的可行解
type BranchAndBound struct{}

// NewBranchAndBound 创建分支定界引擎
func NewBranchAndBound() *BranchAndBound {
	return &BranchAndBound{}
}

// Name 返回引擎名称
func (e *BranchAndBound) Name() string {
	return ProviderBnB
}

// Solve 在时间预算内求解模型
func (e *BranchAndBound) Solve(ctx context.Context, m *Model, budget time.Duration) (*Solution, error) {
	sol := runSearch(ctx, m, budget, false)
	logger.Debug().
		Str("engine", e.Name()).
		Str("status", string(sol.Status)).
		Dur("duration", sol.Duration).
		Msg("分支定界搜索结束")
	return sol, nil
}
