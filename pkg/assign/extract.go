// Package assign 实现班次指派的调度核心
package assign

import (
	"time"

	"github.com/zhipai/zhipai/pkg/solver"
)

// AcceptThreshold 变量取值判定阈值
// 容忍求解器的浮点误差，不要求严格等于 1
const AcceptThreshold = 0.9

// AssignedShift 一条指派记录，时间字段为输出而反归一化
type AssignedShift struct {
	WorkerID  string    `json:"worker_id"`
	ShiftID   string    `json:"shift_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// ExtractAssignments 从求解结果中重建指派的 (工人, 班次) 对
// 遍历顺序与变量创建顺序一致，输出确定
func ExtractAssignments(b *Build, sol *solver.Solution) []AssignedShift {
	assigned := make([]AssignedShift, 0)
	for wi := range b.Workers {
		w := &b.Workers[wi]
		for si := range b.Shifts {
			s := &b.Shifts[si]
			if sol.Values[b.Var(w.ID, s.ID)] > AcceptThreshold {
				assigned = append(assigned, AssignedShift{
					WorkerID:  w.ID,
					ShiftID:   s.ID,
					StartTime: s.StartTime,
					EndTime:   s.EndTime,
				})
			}
		}
	}
	return assigned
}

// CountActiveWorkers 统计至少被指派一个班次的工人数
func CountActiveWorkers(assigned []AssignedShift) int {
	seen := make(map[string]struct{}, len(assigned))
	for _, a := range assigned {
		seen[a.WorkerID] = struct{}{}
	}
	return len(seen)
}
