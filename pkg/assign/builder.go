// Package assign 实现班次指派的调度核心
package assign

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/zhipai/zhipai/pkg/model"
	"github.com/zhipai/zhipai/pkg/solver"
)

// restShardWorkers 休息冲突扫描的并行分片数
const restShardWorkers = 4

// VarKey 决策变量的复合键
type VarKey struct {
	WorkerID string
	ShiftID  string
}

// Build 构建完成的模型及其索引
// 每次求解调用构建一次，求解后即丢弃
type Build struct {
	Model   *solver.Model
	Vars    map[VarKey]solver.VarID
	Workers []model.Worker // 已归一化
	Shifts  []model.Shift
	Rules   map[string]*model.Rule
}

// Var 返回 (工人, 班次) 对应的变量标识
func (b *Build) Var(workerID, shiftID string) solver.VarID {
	return b.Vars[VarKey{WorkerID: workerID, ShiftID: shiftID}]
}

// restConflict 同一工人不可兼得的班次对（按稳定顺序 s1 在前）
type restConflict struct {
	s1, s2 int // b.Shifts 的下标
}

// BuildModel 从归一化后的工人、班次与解析后的规则构建完整模型
//
// 模型内容：
//   - 每个 (工人, 班次) 一个 0/1 变量，不可行的组合也无条件创建，之后再钉死
//   - 目标：最大化被指派班次的偏好权重之和
//   - 覆盖约束：每个班次的指派人数严格等于需求人数
//   - 工作量约束：每个工人的班次数落在规则的 [min, max] 内
//   - 休息互斥约束：时间重叠或间隔小于最小休息时长的班次对，至多指派其一
//   - 硬钉死：可用时段未完整覆盖班次、或缺少班次要求的资质时，变量钉死为 0
func BuildModel(workers []model.Worker, shifts []model.Shift, rules map[string]*model.Rule) *Build {
	b := &Build{
		Model:   solver.NewModel(),
		Vars:    make(map[VarKey]solver.VarID, len(workers)*len(shifts)),
		Workers: workers,
		Shifts:  shifts,
		Rules:   rules,
	}
	m := b.Model

	// 变量：工人在外层、班次在内层，保证标识分配确定
	for wi := range workers {
		for si := range shifts {
			key := VarKey{WorkerID: workers[wi].ID, ShiftID: shifts[si].ID}
			b.Vars[key] = m.AddBinary(fmt.Sprintf("assign_%s_%s", key.WorkerID, key.ShiftID))
		}
	}

	// 目标：最大化偏好权重之和，未列出的班次权重为 0
	var objective []solver.Term
	for wi := range workers {
		w := &workers[wi]
		for si := range shifts {
			if pref := w.PreferenceFor(shifts[si].ID); pref != 0 {
				objective = append(objective, solver.Term{Var: b.Var(w.ID, shifts[si].ID), Coeff: pref})
			}
		}
	}
	m.SetObjective(objective, true)

	// 覆盖约束：严格等于需求人数
	for si := range shifts {
		s := &shifts[si]
		terms := make([]solver.Term, 0, len(workers))
		for wi := range workers {
			terms = append(terms, solver.Term{Var: b.Var(workers[wi].ID, s.ID), Coeff: 1})
		}
		m.AddConstraint(fmt.Sprintf("shift_%s_count", s.ID), terms, solver.OpEq, float64(s.Count))
	}

	// 工作量约束：min <= 班次数 <= max
	for wi := range workers {
		w := &workers[wi]
		rule := rules[w.ID]
		terms := make([]solver.Term, 0, len(shifts))
		for si := range shifts {
			terms = append(terms, solver.Term{Var: b.Var(w.ID, shifts[si].ID), Coeff: 1})
		}
		m.AddConstraint(fmt.Sprintf("worker_%s_min", w.ID), terms, solver.OpGe, float64(rule.EffectiveMinShifts()))
		m.AddConstraint(fmt.Sprintf("worker_%s_max", w.ID), terms, solver.OpLe, float64(rule.EffectiveMaxShifts()))
	}

	b.addRestConstraints()
	b.fixInfeasiblePairs()
	return b
}

// addRestConstraints 生成休息互斥约束
// 每个工人的冲突扫描相互独立，按工人分片并行执行；
// 各分片只写自己的结果槽位，最后按工人顺序合并以保证约束顺序确定
func (b *Build) addRestConstraints() {
	sorted := b.sortedShiftIndexes()
	conflicts := make([][]restConflict, len(b.Workers))

	jobs := make(chan int, len(b.Workers))
	var wg sync.WaitGroup
	shards := restShardWorkers
	if shards > len(b.Workers) {
		shards = len(b.Workers)
	}
	for i := 0; i < shards; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for wi := range jobs {
				rest := b.Rules[b.Workers[wi].ID].RestDuration()
				conflicts[wi] = b.scanRestConflicts(sorted, rest)
			}
		}()
	}
	for wi := range b.Workers {
		jobs <- wi
	}
	close(jobs)
	wg.Wait()

	for wi := range b.Workers {
		w := &b.Workers[wi]
		for _, c := range conflicts[wi] {
			s1, s2 := &b.Shifts[c.s1], &b.Shifts[c.s2]
			terms := []solver.Term{
				{Var: b.Var(w.ID, s1.ID), Coeff: 1},
				{Var: b.Var(w.ID, s2.ID), Coeff: 1},
			}
			b.Model.AddConstraint(
				fmt.Sprintf("rest_%s_%s_%s", w.ID, s1.ID, s2.ID),
				terms, solver.OpLe, 1)
		}
	}
}

// sortedShiftIndexes 返回按 (开始时间, ID) 排序的班次下标
func (b *Build) sortedShiftIndexes() []int {
	sorted := make([]int, len(b.Shifts))
	for i := range sorted {
		sorted[i] = i
	}
	sort.Slice(sorted, func(i, j int) bool {
		si, sj := &b.Shifts[sorted[i]], &b.Shifts[sorted[j]]
		if !si.StartTime.Equal(sj.StartTime) {
			return si.StartTime.Before(sj.StartTime)
		}
		return si.ID < sj.ID
	})
	return sorted
}

// scanRestConflicts 扫描时间上冲突的班次对
// 冲突定义：两个班次重叠，或较早班次结束到较晚班次开始的间隔
// 严格小于最小休息时长。班次已按开始时间排序，内层一旦间隔
// 达到休息时长即可终止：更靠后的班次只会离得更远
func (b *Build) scanRestConflicts(sorted []int, rest time.Duration) []restConflict {
	var out []restConflict
	for i := 0; i < len(sorted); i++ {
		s1 := &b.Shifts[sorted[i]]
		for j := i + 1; j < len(sorted); j++ {
			s2 := &b.Shifts[sorted[j]]
			if s2.StartTime.Sub(s1.EndTime) >= rest {
				break
			}
			out = append(out, restConflict{s1: sorted[i], s2: sorted[j]})
		}
	}
	return out
}

// fixInfeasiblePairs 钉死结构上不可行的 (工人, 班次) 变量
func (b *Build) fixInfeasiblePairs() {
	for wi := range b.Workers {
		w := &b.Workers[wi]
		for si := range b.Shifts {
			s := &b.Shifts[si]
			if !w.CanWork(s) {
				b.Model.Fix(b.Var(w.ID, s.ID), 0)
				continue
			}
			if s.RequiresQualification() && !w.HasQualification(s.Qualification) {
				b.Model.Fix(b.Var(w.ID, s.ID), 0)
			}
		}
	}
}
