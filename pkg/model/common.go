// Package model 定义班次指派引擎的核心数据模型
package model

import (
	"time"
)

// TimeRange 时间范围，区间为左闭右开 [Start, End)
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration 返回时间范围的持续时间
func (tr TimeRange) Duration() time.Duration {
	return tr.End.Sub(tr.Start)
}

// Overlaps 检查两个时间范围是否重叠
func (tr TimeRange) Overlaps(other TimeRange) bool {
	return tr.Start.Before(other.End) && other.Start.Before(tr.End)
}

// Contains 检查时间范围是否包含某个时间点
func (tr TimeRange) Contains(t time.Time) bool {
	return !t.Before(tr.Start) && t.Before(tr.End)
}

// Covers 检查时间范围是否完整覆盖另一个范围
func (tr TimeRange) Covers(other TimeRange) bool {
	return !tr.Start.After(other.Start) && !tr.End.Before(other.End)
}

// GapTo 返回本范围结束到另一个范围开始之间的间隔
// 重叠时返回负值
func (tr TimeRange) GapTo(other TimeRange) time.Duration {
	return other.Start.Sub(tr.End)
}
