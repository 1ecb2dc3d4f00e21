// Package model 定义班次指派引擎的核心数据模型
package model

import (
	"time"
)

// DefaultMaxShifts 未配置上限时的最大班次数哨兵值
const DefaultMaxShifts = 1000

// Rule 工作量与休息规则，可被多个工人共享
type Rule struct {
	ID           string  `json:"id"`
	MinShifts    *int    `json:"min_shifts,omitempty"`
	MaxShifts    *int    `json:"max_shifts,omitempty"`
	MinRestHours float64 `json:"min_rest_hours_between_shifts"`
}

// EffectiveMinShifts 返回最小班次数，未配置时为 0
func (r *Rule) EffectiveMinShifts() int {
	if r.MinShifts == nil {
		return 0
	}
	return *r.MinShifts
}

// EffectiveMaxShifts 返回最大班次数，未配置时为哨兵值
func (r *Rule) EffectiveMaxShifts() int {
	if r.MaxShifts == nil {
		return DefaultMaxShifts
	}
	return *r.MaxShifts
}

// RestDuration 返回两个班次之间要求的最小休息时长
func (r *Rule) RestDuration() time.Duration {
	return time.Duration(r.MinRestHours * float64(time.Hour))
}
