// Package model 定义班次指派引擎的核心数据模型
package model

import (
	"time"
)

// Shift 班次：需要指定人数的固定时间窗口
type Shift struct {
	ID            string    `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Count         int       `json:"count"`                   // 需求人数
	Qualification string    `json:"qualification,omitempty"` // 上岗资质要求，空表示无要求
}

// TimeRange 返回班次的时间范围
func (s *Shift) TimeRange() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// DurationHours 返回班次时长（小时）
func (s *Shift) DurationHours() float64 {
	return s.EndTime.Sub(s.StartTime).Hours()
}

// RequiresQualification 检查班次是否有资质要求
func (s *Shift) RequiresQualification() bool {
	return s.Qualification != ""
}
