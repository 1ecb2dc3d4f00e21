// ZhiPai 班次指派求解器
// 主程序入口：读取输入文档，求解，写出解与统计
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zhipai/zhipai/internal/config"
	"github.com/zhipai/zhipai/internal/database"
	"github.com/zhipai/zhipai/internal/repository"
	"github.com/zhipai/zhipai/pkg/assign"
	"github.com/zhipai/zhipai/pkg/logger"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/validator"
)

// 构建信息（通过 ldflags 注入）
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "加载配置失败:", err)
		os.Exit(1)
	}

	// 日志必须走 stderr，stdout 留给输出文档
	logger.Init(logger.Config{
		Level:  cfg.App.LogLevel,
		Format: "console",
		Output: "stderr",
	})

	inputPath := flag.String("input", "", "输入文件路径，默认从 stdin 读取")
	outputPath := flag.String("output", "", "输出文件路径，默认写到 stdout")
	duration := flag.Int("duration", int(cfg.Solver.DefaultBudget.Seconds()), "最大求解时长（秒）")
	provider := flag.String("provider", cfg.Solver.DefaultProvider, "求解引擎标识")
	flag.Parse()

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("ZhiPai 班次指派求解器")

	input, err := readInput(*inputPath)
	if err != nil {
		logger.WithError(err).Msg("读取输入失败")
		os.Exit(1)
	}

	logger.Info().
		Int("shifts", len(input.Shifts)).
		Int("workers", len(input.Workers)).
		Int("rules", len(input.Rules)).
		Int("max_duration_seconds", *duration).
		Msg("求解班次指派")

	ctx := context.Background()
	result, err := assign.Solve(ctx, input, assign.Options{
		Budget:   time.Duration(*duration) * time.Second,
		Provider: *provider,
	})
	if err != nil {
		// 配置错误是唯一的不可恢复失败；求解层面的不可行与超时走统计
		logger.WithError(err).Msg("求解失败")
		os.Exit(1)
	}

	verify(input, result)
	archive(ctx, cfg, result)

	if err := writeOutput(*outputPath, result); err != nil {
		logger.WithError(err).Msg("写出结果失败")
		os.Exit(1)
	}
}

// readInput 从文件或 stdin 读取输入文档
func readInput(path string) (*model.Input, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return model.ReadInput(r)
}

// writeOutput 把输出文档写到文件或 stdout
func writeOutput(path string, result *assign.Result) error {
	content, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')
	if path != "" {
		return os.WriteFile(path, content, 0644)
	}
	_, err = os.Stdout.Write(content)
	return err
}

// verify 对返回的指派做事后校验，违反记录按警告输出
// 只在找到可行解时执行，不可行与超时的空指派无需校验
func verify(input *model.Input, result *assign.Result) {
	status := result.Statistics.Result.Custom.Status
	if status != "optimal" && status != "suboptimal" {
		return
	}
	if len(result.Solutions) == 0 {
		return
	}
	violations := validator.NewVerifier(input).Verify(result.Solutions[0].AssignedShifts)
	for _, v := range violations {
		logger.Warn().
			Str("type", string(v.Type)).
			Str("worker_id", v.WorkerID).
			Str("shift_id", v.ShiftID).
			Msg(v.Message)
	}
}

// archive 把求解诊断写入归档库（可选，默认关闭）
func archive(ctx context.Context, cfg *config.Config, result *assign.Result) {
	if !cfg.Archive.Enabled {
		return
	}

	db, err := database.New(&cfg.Archive.Database)
	if err != nil {
		logger.WithError(err).Msg("连接归档库失败，跳过归档")
		return
	}
	defer db.Close()

	repo := repository.NewRunRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Msg("初始化归档表失败，跳过归档")
		return
	}

	custom := result.Statistics.Result.Custom
	run := &repository.SolveRun{
		ID:                result.RunID,
		Provider:          custom.Provider,
		Status:            custom.Status,
		Variables:         custom.Variables,
		FixedVariables:    custom.FixedVariables,
		Constraints:       custom.Constraints,
		ActiveWorkers:     custom.ActiveWorkers,
		TotalWorkers:      custom.TotalWorkers,
		AvailabilityUsage: custom.AvailabilityUsage,
		SolveSeconds:      result.Statistics.Result.Duration,
		RunSeconds:        result.Statistics.Run.Duration,
	}
	if !result.Statistics.Result.Value.IsNaN() {
		run.Objective = sql.NullFloat64{Float64: float64(result.Statistics.Result.Value), Valid: true}
	}
	if err := repo.Save(ctx, run); err != nil {
		logger.WithError(err).Msg("写入归档失败")
		return
	}
	logger.Debug().Str("run_id", run.ID.String()).Msg("求解记录已归档")
}
