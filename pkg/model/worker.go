// Package model 定义班次指派引擎的核心数据模型
package model

import (
	"time"
)

// AvailabilityInterval 可用时段：工人可被指派的连续时间窗口
type AvailabilityInterval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// TimeRange 返回可用时段的时间范围
func (a AvailabilityInterval) TimeRange() TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// Covers 检查可用时段是否完整覆盖班次
func (a AvailabilityInterval) Covers(s *Shift) bool {
	return !a.StartTime.After(s.StartTime) && !a.EndTime.Before(s.EndTime)
}

// Worker 工人：可被指派的对象
type Worker struct {
	ID             string                 `json:"id"`
	Qualifications []string               `json:"qualifications,omitempty"`
	Preferences    map[string]float64     `json:"preferences,omitempty"` // key: 班次ID
	RuleID         string                 `json:"rules"`
	Availability   []AvailabilityInterval `json:"availability"`
}

// HasQualification 检查工人是否具备某资质
func (w *Worker) HasQualification(q string) bool {
	for _, have := range w.Qualifications {
		if have == q {
			return true
		}
	}
	return false
}

// PreferenceFor 返回工人对某班次的偏好权重，未列出的班次为 0
func (w *Worker) PreferenceFor(shiftID string) float64 {
	if w.Preferences == nil {
		return 0
	}
	return w.Preferences[shiftID]
}

// CanWork 检查工人的可用时段是否完整覆盖班次
func (w *Worker) CanWork(s *Shift) bool {
	for _, a := range w.Availability {
		if a.Covers(s) {
			return true
		}
	}
	return false
}
