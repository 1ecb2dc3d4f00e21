// Package assign 实现班次指派的调度核心
package assign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/solver"
	"github.com/zhipai/zhipai/pkg/stats"
)

// Options 一次求解调用的配置
type Options struct {
	Budget   time.Duration // 求解器的时间预算
	Provider string        // 求解引擎标识
}

// Solution 输出文档中的一个解
type Solution struct {
	AssignedShifts []AssignedShift `json:"assigned_shifts"`
}

// Result 输出文档：解列表与统计对象
type Result struct {
	Solutions  []Solution        `json:"solutions"`
	Statistics *stats.Statistics `json:"statistics"`

	// RunID 本次调用的标识，用于日志与归档，不进入输出文档
	RunID uuid.UUID `json:"-"`
}

// Solve 执行一次完整的求解调用
// 数据单向流动：原始输入 → 归一化工人/规则 → 模型 → 求解 → 结构化结果
// 配置错误（规则解析失败、未知引擎）作为 error 返回；
// 求解器层面的不可行与超时作为统计中的状态返回，不视为失败
func Solve(ctx context.Context, input *model.Input, opts Options) (*Result, error) {
	start := time.Now()
	runID := uuid.New()
	slog := logger.NewSolverLogger()

	engine, err := solver.NewEngine(opts.Provider)
	if err != nil {
		return nil, err
	}

	slog.StartSolve(runID.String(), opts.Provider,
		len(input.Workers), len(input.Shifts), len(input.Rules), opts.Budget)

	workers := NormalizeWorkers(input.Workers)
	rules, err := ResolveRules(workers, input.Rules)
	if err != nil {
		return nil, err
	}

	build := BuildModel(workers, input.Shifts, rules)
	slog.ModelBuilt(runID.String(),
		build.Model.NumVariables(), build.Model.NumConstraints(), build.Model.NumFixed())

	sol, err := engine.Solve(ctx, build.Model, opts.Budget)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "求解引擎执行失败")
	}

	assigned := ExtractAssignments(build, sol)
	active := CountActiveWorkers(assigned)

	statistics := stats.Collect(
		opts.Provider, string(sol.Status),
		build.Model.NumVariables(), build.Model.NumFixed(), build.Model.NumConstraints(),
		active, len(workers),
		sol.Objective,
		sol.Duration, time.Since(start),
	)
	slog.SolveComplete(runID.String(), string(sol.Status), time.Since(start), sol.Objective)

	return &Result{
		Solutions:  []Solution{{AssignedShifts: assigned}},
		Statistics: statistics,
		RunID:      runID,
	}, nil
}
