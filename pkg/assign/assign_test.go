package assign

import (
	"context"
	"testing"
	"time"

	"github.com/zhipai/zhipai/pkg/errors"
	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/solver"
)

func solveInput(t *testing.T, input *model.Input) *Result {
	t.Helper()
	result, err := Solve(context.Background(), input, Options{
		Budget:   10 * time.Second,
		Provider: solver.ProviderBnB,
	})
	if err != nil {
		t.Fatalf("Solve() 失败: %v", err)
	}
	return result
}

func TestSolve_UnsupportedProvider(t *testing.T) {
	input := &model.Input{}
	_, err := Solve(context.Background(), input, Options{
		Budget:   time.Second,
		Provider: "glpk",
	})
	if err == nil {
		t.Fatal("未知引擎应该返回配置错误")
	}
	if !errors.Is(err, errors.CodeUnsupportedProvider) {
		t.Errorf("错误码 = %v, expected UNSUPPORTED_PROVIDER", errors.GetCode(err))
	}
}

func TestSolve_InvalidRule(t *testing.T) {
	input := &model.Input{
		Workers: []model.Worker{{ID: "w1", RuleID: "missing"}},
		Rules:   []model.Rule{{ID: "r1"}},
	}
	_, err := Solve(context.Background(), input, Options{
		Budget:   time.Second,
		Provider: solver.ProviderBnB,
	})
	if !errors.Is(err, errors.CodeInvalidRule) {
		t.Errorf("错误码 = %v, expected INVALID_RULE", errors.GetCode(err))
	}
}

func TestSolve_EmptyInput(t *testing.T) {
	result := solveInput(t, &model.Input{})

	if len(result.Solutions) != 1 {
		t.Fatalf("应返回一个（空）解, got %d", len(result.Solutions))
	}
	if len(result.Solutions[0].AssignedShifts) != 0 {
		t.Error("空输入的指派列表应为空")
	}
	custom := result.Statistics.Result.Custom
	if custom.TotalWorkers != 0 {
		t.Errorf("TotalWorkers = %d, expected 0", custom.TotalWorkers)
	}
	// 没有工人时使用率报告 0，不做除零
	if custom.AvailabilityUsage != 0 {
		t.Errorf("AvailabilityUsage = %v, expected 0", custom.AvailabilityUsage)
	}
	if custom.Status != string(solver.StatusOptimal) {
		t.Errorf("状态 = %s, expected optimal（空模型平凡可行）", custom.Status)
	}
}

func TestSolve_ShiftsButNoWorkers(t *testing.T) {
	input := &model.Input{
		Shifts: []model.Shift{
			{ID: "s1", StartTime: ts(9), EndTime: ts(17), Count: 1},
		},
	}

	result := solveInput(t, input)
	custom := result.Statistics.Result.Custom

	if custom.Status != string(solver.StatusInfeasible) {
		t.Fatalf("状态 = %s, expected infeasible（无人可覆盖班次）", custom.Status)
	}
	if custom.AvailabilityUsage != 0 {
		t.Errorf("没有工人时使用率应为 0, got %v", custom.AvailabilityUsage)
	}
	if !result.Statistics.Result.Value.IsNaN() {
		t.Error("无可行解时目标值应为 NaN")
	}
}

func TestSolve_Statistics(t *testing.T) {
	input := &model.Input{
		Workers: []model.Worker{
			{
				ID: "w1", RuleID: "r1",
				Preferences:  map[string]float64{"s1": 4},
				Availability: []model.AvailabilityInterval{iv(8, 18)},
			},
			{
				ID: "w2", RuleID: "r1",
				// 可用时段不覆盖班次，变量会被钉死
				Availability: []model.AvailabilityInterval{iv(18, 22)},
			},
		},
		Shifts: []model.Shift{
			{ID: "s1", StartTime: ts(9), EndTime: ts(17), Count: 1},
		},
		Rules: []model.Rule{{ID: "r1", MinRestHours: 8}},
	}

	result := solveInput(t, input)
	custom := result.Statistics.Result.Custom

	if custom.Status != string(solver.StatusOptimal) {
		t.Fatalf("状态 = %s, expected optimal", custom.Status)
	}
	if custom.Variables != 2 {
		t.Errorf("Variables = %d, expected 2", custom.Variables)
	}
	if custom.FixedVariables != 1 {
		t.Errorf("FixedVariables = %d, expected 1", custom.FixedVariables)
	}
	// 覆盖 1 + 工作量 2
	if custom.Constraints != 3 {
		t.Errorf("Constraints = %d, expected 3", custom.Constraints)
	}
	if custom.ActiveWorkers != 1 || custom.TotalWorkers != 2 {
		t.Errorf("active/total = %d/%d, expected 1/2", custom.ActiveWorkers, custom.TotalWorkers)
	}
	if custom.AvailabilityUsage != 50 {
		t.Errorf("AvailabilityUsage = %v, expected 50", custom.AvailabilityUsage)
	}
	if float64(result.Statistics.Result.Value) != 4 {
		t.Errorf("目标值 = %v, expected 4", result.Statistics.Result.Value)
	}
	if result.Statistics.Schema != "v1" {
		t.Errorf("Schema = %s, expected v1", result.Statistics.Schema)
	}

	assigned := result.Solutions[0].AssignedShifts
	if len(assigned) != 1 {
		t.Fatalf("指派数 = %d, expected 1", len(assigned))
	}
	if assigned[0].WorkerID != "w1" || assigned[0].ShiftID != "s1" {
		t.Errorf("指派不正确: %+v", assigned[0])
	}
	if !assigned[0].StartTime.Equal(ts(9)) || !assigned[0].EndTime.Equal(ts(17)) {
		t.Error("输出应带反归一化的班次时间")
	}
}

func TestExtractAssignments_Threshold(t *testing.T) {
	workers := []model.Worker{
		{ID: "w1", RuleID: "r1", Availability: []model.AvailabilityInterval{iv(0, 23)}},
	}
	shifts := []model.Shift{
		{ID: "s1", StartTime: ts(9), EndTime: ts(12), Count: 1},
		{ID: "s2", StartTime: ts(14), EndTime: ts(17), Count: 0},
	}
	rules := []model.Rule{{ID: "r1"}}
	b := buildFixture(t, workers, shifts, rules)

	// 带浮点误差的求解器取值
	sol := &solver.Solution{
		Status: solver.StatusOptimal,
		Values: make([]float64, b.Model.NumVariables()),
	}
	sol.Values[b.Var("w1", "s1")] = 0.999999
	sol.Values[b.Var("w1", "s2")] = 0.3

	assigned := ExtractAssignments(b, sol)
	if len(assigned) != 1 {
		t.Fatalf("指派数 = %d, expected 1（阈值 %v）", len(assigned), AcceptThreshold)
	}
	if assigned[0].ShiftID != "s1" {
		t.Errorf("指派了错误的班次: %s", assigned[0].ShiftID)
	}
}

func TestCountActiveWorkers(t *testing.T) {
	assigned := []AssignedShift{
		{WorkerID: "w1", ShiftID: "s1"},
		{WorkerID: "w1", ShiftID: "s2"},
		{WorkerID: "w2", ShiftID: "s3"},
	}
	if n := CountActiveWorkers(assigned); n != 2 {
		t.Errorf("CountActiveWorkers() = %d, expected 2", n)
	}
	if n := CountActiveWorkers(nil); n != 0 {
		t.Errorf("CountActiveWorkers(nil) = %d, expected 0", n)
	}
}
