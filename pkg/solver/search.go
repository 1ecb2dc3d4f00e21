// Package solver 提供 0/1 整数规划的求解器抽象
package solver

import (
	"context"
	"math"
	"time"
)

const (
	// 浮点比较容差
	searchEps = 1e-6

	// 每隔多少个节点检查一次时间预算
	deadlineCheckInterval = 1024
)

// ctTerm 变量在某条约束中的出现
type ctTerm struct {
	ci    int
	coeff float64
}

// searcher 深度优先分支搜索核心
// 对每条约束维护已决策部分的和以及未决策部分可达的上下界，
// 下探过程中剪掉不可能满足的分支；目标按剩余正系数之和做乐观上界剪枝
type searcher struct {
	m   *Model
	ctx context.Context

	value []int8 // -1 未决策
	order []int  // 自由变量的决策顺序

	sum    []float64 // 每条约束已决策部分的和
	posRem []float64 // 每条约束未决策正系数之和
	negRem []float64 // 每条约束未决策负系数之和

	varTerms [][]ctTerm

	objCoeff  []float64 // 内部统一按最大化处理
	objVal    float64
	objPosRem float64

	bestVals []int8
	bestObj  float64
	hasBest  bool

	deadline  time.Time
	hasBudget bool
	nodes     int
	timedOut  bool

	// firstOnly 为真时找到第一个可行解即停止（贪心引擎）
	firstOnly bool
	stopped   bool
}

// newSearcher 构建搜索状态并应用钉死的变量
// 返回 nil 表示钉死的变量已经使某条约束不可满足
func newSearcher(ctx context.Context, m *Model, budget time.Duration, firstOnly bool) (*searcher, bool) {
	n := m.NumVariables()
	s := &searcher{
		m:         m,
		ctx:       ctx,
		value:     make([]int8, n),
		sum:       make([]float64, len(m.constraints)),
		posRem:    make([]float64, len(m.constraints)),
		negRem:    make([]float64, len(m.constraints)),
		varTerms:  make([][]ctTerm, n),
		objCoeff:  make([]float64, n),
		firstOnly: firstOnly,
	}
	if budget > 0 {
		s.deadline = time.Now().Add(budget)
		s.hasBudget = true
	}

	for i := range s.value {
		s.value[i] = -1
	}
	for ci, c := range m.constraints {
		for _, t := range c.Terms {
			s.varTerms[t.Var] = append(s.varTerms[t.Var], ctTerm{ci: ci, coeff: t.Coeff})
			if t.Coeff > 0 {
				s.posRem[ci] += t.Coeff
			} else {
				s.negRem[ci] += t.Coeff
			}
		}
	}
	sign := 1.0
	if !m.maximize {
		sign = -1.0
	}
	for _, t := range m.objective {
		s.objCoeff[t.Var] += sign * t.Coeff
	}
	for _, c := range s.objCoeff {
		if c > 0 {
			s.objPosRem += c
		}
	}

	// 全部变量未决策时的可满足性检查
	// 捕获空约束（例如没有工人时的覆盖约束）和本身不可满足的约束行
	for ci := range m.constraints {
		if !s.satisfiable(ci) {
			return s, false
		}
	}

	// 先应用钉死的变量，再确定自由变量的决策顺序
	for i := range m.vars {
		v := &m.vars[i]
		if !v.Fixed {
			s.order = append(s.order, int(v.ID))
			continue
		}
		val := int8(0)
		if v.FixedValue > 0.5 {
			val = 1
		}
		if !s.decide(int(v.ID), val) {
			return s, false
		}
	}
	return s, true
}

// decide 决策一个变量并做约束可满足性检查
// 返回 false 表示该决策使某条受影响的约束不可满足（状态已更新，需要 undo）
func (s *searcher) decide(v int, val int8) bool {
	s.value[v] = val
	ok := true
	for _, t := range s.varTerms[v] {
		s.sum[t.ci] += t.coeff * float64(val)
		if t.coeff > 0 {
			s.posRem[t.ci] -= t.coeff
		} else {
			s.negRem[t.ci] -= t.coeff
		}
		if !s.satisfiable(t.ci) {
			ok = false
		}
	}
	s.objVal += s.objCoeff[v] * float64(val)
	if s.objCoeff[v] > 0 {
		s.objPosRem -= s.objCoeff[v]
	}
	return ok
}

// undo 撤销一次决策
func (s *searcher) undo(v int) {
	val := s.value[v]
	s.value[v] = -1
	for _, t := range s.varTerms[v] {
		s.sum[t.ci] -= t.coeff * float64(val)
		if t.coeff > 0 {
			s.posRem[t.ci] += t.coeff
		} else {
			s.negRem[t.ci] += t.coeff
		}
	}
	s.objVal -= s.objCoeff[v] * float64(val)
	if s.objCoeff[v] > 0 {
		s.objPosRem += s.objCoeff[v]
	}
}

// satisfiable 检查约束在当前部分决策下是否仍可满足
func (s *searcher) satisfiable(ci int) bool {
	c := &s.m.constraints[ci]
	lo := s.sum[ci] + s.negRem[ci]
	hi := s.sum[ci] + s.posRem[ci]
	switch c.Op {
	case OpEq:
		return lo <= c.RHS+searchEps && hi >= c.RHS-searchEps
	case OpLe:
		return lo <= c.RHS+searchEps
	case OpGe:
		return hi >= c.RHS-searchEps
	default:
		return true
	}
}

// dfs 深度优先搜索
func (s *searcher) dfs(depth int) {
	if s.stopped || s.timedOut {
		return
	}
	s.nodes++
	if s.nodes%deadlineCheckInterval == 0 {
		if s.ctx.Err() != nil || (s.hasBudget && time.Now().After(s.deadline)) {
			s.timedOut = true
			return
		}
	}

	if depth == len(s.order) {
		s.recordIncumbent()
		return
	}

	// 乐观上界剪枝
	if s.hasBest && s.objVal+s.objPosRem <= s.bestObj+searchEps {
		return
	}

	v := s.order[depth]
	branch := [2]int8{0, 1}
	if s.objCoeff[v] > 0 {
		// 先试对目标有利的取值，尽早得到好的可行解
		branch = [2]int8{1, 0}
	}
	for _, val := range branch {
		if s.decide(v, val) {
			s.dfs(depth + 1)
		}
		s.undo(v)
		if s.stopped || s.timedOut {
			return
		}
	}
}

// recordIncumbent 记录当前完整决策为候选解
func (s *searcher) recordIncumbent() {
	if s.hasBest && s.objVal <= s.bestObj+searchEps {
		return
	}
	if s.bestVals == nil {
		s.bestVals = make([]int8, len(s.value))
	}
	copy(s.bestVals, s.value)
	s.bestObj = s.objVal
	s.hasBest = true
	if s.firstOnly {
		s.stopped = true
	}
}

// runSearch 执行搜索并组装求解结果
func runSearch(ctx context.Context, m *Model, budget time.Duration, firstOnly bool) *Solution {
	start := time.Now()

	s, ok := newSearcher(ctx, m, budget, firstOnly)
	if !ok {
		// 钉死的变量之间已经冲突
		return emptySolution(m, StatusInfeasible, time.Since(start))
	}
	s.dfs(0)

	if !s.hasBest {
		status := StatusInfeasible
		if s.timedOut {
			status = StatusUnknown
		}
		return emptySolution(m, status, time.Since(start))
	}

	status := StatusOptimal
	if s.timedOut || s.stopped {
		status = StatusSuboptimal
	}
	values := make([]float64, len(s.bestVals))
	for i, v := range s.bestVals {
		values[i] = float64(v)
	}
	objective := s.bestObj
	if !m.maximize {
		objective = -objective
	}
	if math.IsNaN(objective) {
		objective = 0
	}
	return &Solution{
		Status:    status,
		Values:    values,
		Objective: objective,
		Duration:  time.Since(start),
	}
}
