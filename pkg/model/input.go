// Package model 定义班次指派引擎的核心数据模型
package model

import (
	"encoding/json"
	"io"

	"github.com/zhipai/zhipai/pkg/errors"
)

// Input 输入文档：工人、班次与规则的完整集合
// 载入后视为只读
type Input struct {
	Workers []Worker `json:"workers"`
	Shifts  []Shift  `json:"shifts"`
	Rules   []Rule   `json:"rules"`
}

// ReadInput 从流中解析输入文档并做基础校验
func ReadInput(r io.Reader) (*Input, error) {
	var input Input
	dec := json.NewDecoder(r)
	if err := dec.Decode(&input); err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "解析输入文档失败")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return &input, nil
}

// Validate 校验输入文档的基础不变量
func (in *Input) Validate() error {
	for i := range in.Shifts {
		s := &in.Shifts[i]
		if !s.EndTime.After(s.StartTime) {
			return errors.New(errors.CodeInvalidTimeRange,
				"班次 '"+s.ID+"' 的结束时间必须晚于开始时间")
		}
		if s.Count < 0 {
			return errors.InvalidInput("count", "班次 '"+s.ID+"' 的需求人数不能为负")
		}
	}
	for i := range in.Workers {
		w := &in.Workers[i]
		for _, a := range w.Availability {
			if !a.EndTime.After(a.StartTime) {
				return errors.New(errors.CodeInvalidTimeRange,
					"工人 '"+w.ID+"' 的可用时段结束时间必须晚于开始时间")
			}
		}
	}
	for i := range in.Rules {
		r := &in.Rules[i]
		if r.EffectiveMinShifts() < 0 {
			return errors.InvalidInput("min_shifts", "规则 '"+r.ID+"' 的最小班次数不能为负")
		}
		if r.EffectiveMaxShifts() < r.EffectiveMinShifts() {
			return errors.InvalidInput("max_shifts", "规则 '"+r.ID+"' 的最大班次数不能小于最小班次数")
		}
		if r.MinRestHours < 0 {
			return errors.InvalidInput("min_rest_hours_between_shifts",
				"规则 '"+r.ID+"' 的最小休息时长不能为负")
		}
	}
	return nil
}
