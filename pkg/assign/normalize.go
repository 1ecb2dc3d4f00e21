// Package assign 实现班次指派的调度核心：
// 可用时段归一化、规则解析、模型构建与解提取
package assign

import (
	"sort"

	"github.com/zhipai/zhipai/pkg/model"
)

// NormalizeAvailability 归一化一个工人的可用时段列表
// 按开始时间升序排序，并把首尾严格相接的时段合并为一个；
// 真正重叠或有间隙的时段保持原样。纯函数，不修改输入
func NormalizeAvailability(intervals []model.AvailabilityInterval) []model.AvailabilityInterval {
	if len(intervals) == 0 {
		return nil
	}

	merged := make([]model.AvailabilityInterval, len(intervals))
	copy(merged, intervals)
	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].StartTime.Equal(merged[j].StartTime) {
			return merged[i].StartTime.Before(merged[j].StartTime)
		}
		return merged[i].EndTime.Before(merged[j].EndTime)
	})

	out := merged[:1]
	for _, next := range merged[1:] {
		last := &out[len(out)-1]
		if last.EndTime.Equal(next.StartTime) {
			// 首尾相接，吞并后继续与下一个时段比较
			last.EndTime = next.EndTime
			continue
		}
		out = append(out, next)
	}
	return out
}

// NormalizeWorkers 返回可用时段已归一化的工人副本列表
// 不修改输入
func NormalizeWorkers(workers []model.Worker) []model.Worker {
	out := make([]model.Worker, len(workers))
	copy(out, workers)
	for i := range out {
		out[i].Availability = NormalizeAvailability(out[i].Availability)
	}
	return out
}
