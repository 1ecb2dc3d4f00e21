// Package validator 提供求解结果的事后校验
package validator

import (
	"fmt"
	"sort"

	"github.com/zhipai/zhipai/pkg/assign"
	"github.com/zhipai/zhipai/pkg/model"
)

// ViolationType 违反类型
type ViolationType string

const (
	ViolationCoverage      ViolationType = "coverage"      // 覆盖人数不等于需求
	ViolationWorkload      ViolationType = "workload"      // 班次数超出规则范围
	ViolationRest          ViolationType = "rest"          // 重叠或休息不足
	ViolationAvailability  ViolationType = "availability"  // 可用时段未覆盖班次
	ViolationQualification ViolationType = "qualification" // 缺少资质
	ViolationUnknownRef    ViolationType = "unknown_ref"   // 引用了不存在的工人或班次
)

// Violation 一条违反记录
type Violation struct {
	Type     ViolationType `json:"type"`
	WorkerID string        `json:"worker_id,omitempty"`
	ShiftID  string        `json:"shift_id,omitempty"`
	Message  string        `json:"message"`
}

// Verifier 求解结果校验器
// 对返回的指派重新检查覆盖、工作量、休息、可用性与资质约束
type Verifier struct {
	workers map[string]*model.Worker
	shifts  map[string]*model.Shift
	rules   map[string]*model.Rule
}

// NewVerifier 创建校验器
// 内部自行归一化可用时段与解析规则；规则无法解析的工人按未知引用报告
func NewVerifier(input *model.Input) *Verifier {
	workers := assign.NormalizeWorkers(input.Workers)
	v := &Verifier{
		workers: make(map[string]*model.Worker, len(workers)),
		shifts:  make(map[string]*model.Shift, len(input.Shifts)),
		rules:   make(map[string]*model.Rule, len(workers)),
	}
	for i := range workers {
		v.workers[workers[i].ID] = &workers[i]
	}
	for i := range input.Shifts {
		v.shifts[input.Shifts[i].ID] = &input.Shifts[i]
	}
	if rules, err := assign.ResolveRules(workers, input.Rules); err == nil {
		v.rules = rules
	}
	return v
}

// Verify 检查一组指派，返回所有违反记录
func (v *Verifier) Verify(assigned []assign.AssignedShift) []Violation {
	var violations []Violation
	violations = append(violations, v.checkReferences(assigned)...)
	violations = append(violations, v.checkCoverage(assigned)...)
	violations = append(violations, v.checkWorkload(assigned)...)
	violations = append(violations, v.checkRest(assigned)...)
	violations = append(violations, v.checkEligibility(assigned)...)
	return violations
}

// checkReferences 检查指派引用的工人和班次是否存在
func (v *Verifier) checkReferences(assigned []assign.AssignedShift) []Violation {
	var out []Violation
	for _, a := range assigned {
		if _, ok := v.workers[a.WorkerID]; !ok {
			out = append(out, Violation{
				Type:     ViolationUnknownRef,
				WorkerID: a.WorkerID,
				Message:  fmt.Sprintf("指派引用了不存在的工人 '%s'", a.WorkerID),
			})
		}
		if _, ok := v.shifts[a.ShiftID]; !ok {
			out = append(out, Violation{
				Type:    ViolationUnknownRef,
				ShiftID: a.ShiftID,
				Message: fmt.Sprintf("指派引用了不存在的班次 '%s'", a.ShiftID),
			})
		}
	}
	return out
}

// checkCoverage 检查每个班次的指派人数是否严格等于需求人数
func (v *Verifier) checkCoverage(assigned []assign.AssignedShift) []Violation {
	counts := make(map[string]int, len(v.shifts))
	for _, a := range assigned {
		counts[a.ShiftID]++
	}
	ids := make([]string, 0, len(v.shifts))
	for id := range v.shifts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Violation
	for _, id := range ids {
		s := v.shifts[id]
		if counts[id] != s.Count {
			out = append(out, Violation{
				Type:    ViolationCoverage,
				ShiftID: id,
				Message: fmt.Sprintf("班次 '%s' 需要 %d 人，实际指派 %d 人", id, s.Count, counts[id]),
			})
		}
	}
	return out
}

// checkWorkload 检查每个工人的班次数是否落在规则范围内
func (v *Verifier) checkWorkload(assigned []assign.AssignedShift) []Violation {
	counts := make(map[string]int, len(v.workers))
	for _, a := range assigned {
		counts[a.WorkerID]++
	}
	ids := make([]string, 0, len(v.workers))
	for id := range v.workers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Violation
	for _, id := range ids {
		rule, ok := v.rules[id]
		if !ok {
			continue
		}
		n := counts[id]
		if n < rule.EffectiveMinShifts() || n > rule.EffectiveMaxShifts() {
			out = append(out, Violation{
				Type:     ViolationWorkload,
				WorkerID: id,
				Message: fmt.Sprintf("工人 '%s' 被指派 %d 个班次，超出 [%d, %d]",
					id, n, rule.EffectiveMinShifts(), rule.EffectiveMaxShifts()),
			})
		}
	}
	return out
}

// checkRest 检查同一工人的指派是否重叠或休息不足
func (v *Verifier) checkRest(assigned []assign.AssignedShift) []Violation {
	byWorker := make(map[string][]assign.AssignedShift)
	for _, a := range assigned {
		byWorker[a.WorkerID] = append(byWorker[a.WorkerID], a)
	}
	ids := make([]string, 0, len(byWorker))
	for id := range byWorker {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Violation
	for _, id := range ids {
		rule, ok := v.rules[id]
		if !ok {
			continue
		}
		rest := rule.RestDuration()
		shifts := byWorker[id]
		sort.Slice(shifts, func(i, j int) bool {
			if !shifts[i].StartTime.Equal(shifts[j].StartTime) {
				return shifts[i].StartTime.Before(shifts[j].StartTime)
			}
			return shifts[i].ShiftID < shifts[j].ShiftID
		})
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				if shifts[j].StartTime.Sub(shifts[i].EndTime) >= rest {
					break
				}
				out = append(out, Violation{
					Type:     ViolationRest,
					WorkerID: id,
					ShiftID:  shifts[j].ShiftID,
					Message: fmt.Sprintf("工人 '%s' 的班次 '%s' 与 '%s' 重叠或休息不足",
						id, shifts[i].ShiftID, shifts[j].ShiftID),
				})
			}
		}
	}
	return out
}

// checkEligibility 检查可用时段覆盖与资质
func (v *Verifier) checkEligibility(assigned []assign.AssignedShift) []Violation {
	var out []Violation
	for _, a := range assigned {
		w, ok := v.workers[a.WorkerID]
		if !ok {
			continue
		}
		s, ok := v.shifts[a.ShiftID]
		if !ok {
			continue
		}
		if !w.CanWork(s) {
			out = append(out, Violation{
				Type:     ViolationAvailability,
				WorkerID: a.WorkerID,
				ShiftID:  a.ShiftID,
				Message:  fmt.Sprintf("工人 '%s' 的可用时段未完整覆盖班次 '%s'", a.WorkerID, a.ShiftID),
			})
		}
		if s.RequiresQualification() && !w.HasQualification(s.Qualification) {
			out = append(out, Violation{
				Type:     ViolationQualification,
				WorkerID: a.WorkerID,
				ShiftID:  a.ShiftID,
				Message:  fmt.Sprintf("工人 '%s' 缺少班次 '%s' 要求的资质 '%s'", a.WorkerID, a.ShiftID, s.Qualification),
			})
		}
	}
	return out
}
