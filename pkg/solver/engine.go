// Package solver 提供 0/1 整数规划的求解器抽象
package solver

import (
	"context"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
)

// Engine 求解引擎接口
// 任何实现了注册变量/约束/目标并在时间预算内求解的组件均可替换
type Engine interface {
	// Solve 在时间预算内求解模型
	// 求解器层面的结果（不可行、超时）通过 Solution.Status 返回，不作为 error
	Solve(ctx context.Context, m *Model, budget time.Duration) (*Solution, error)

	// Name 返回引擎名称
	Name() string
}

// 支持的引擎标识
const (
	ProviderBnB    = "bnb"
	ProviderGreedy = "greedy"
)

// SupportedProviders 返回支持的引擎标识列表
func SupportedProviders() []string {
	return []string{ProviderBnB, ProviderGreedy}
}

// NewEngine 按标识创建求解引擎
// 未知标识返回配置错误
func NewEngine(provider string) (Engine, error) {
	switch provider {
	case ProviderBnB:
		return NewBranchAndBound(), nil
	case ProviderGreedy:
		return NewGreedy(), nil
	default:
		return nil, errors.UnsupportedProvider(provider, SupportedProviders())
	}
}
