// Package solver 提供 0/1 整数规划的求解器抽象
package solver

import (
	"math"
	"time"
)

// VarID 变量标识，由模型按注册顺序分配
type VarID int

// Op 线性约束的比较算子
type Op string

const (
	OpEq Op = "=="
	OpLe Op = "<="
	OpGe Op = ">="
)

// Term 线性表达式中的一项
type Term struct {
	Var   VarID
	Coeff float64
}

// Variable 0/1 决策变量
// Fixed 为真时变量在求解前被钉死为 FixedValue
type Variable struct {
	ID         VarID
	Name       string
	Fixed      bool
	FixedValue float64
}

// Constraint 线性约束
type Constraint struct {
	Name  string
	Terms []Term
	Op    Op
	RHS   float64
}

// Model 求解模型：变量、线性约束与线性目标
// 每次求解调用构建一次，求解后即丢弃
type Model struct {
	vars        []Variable
	constraints []Constraint
	objective   []Term
	maximize    bool
}

// NewModel 创建空模型，默认最大化目标
func NewModel() *Model {
	return &Model{maximize: true}
}

// AddBinary 注册一个 0/1 变量并返回其标识
func (m *Model) AddBinary(name string) VarID {
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Variable{ID: id, Name: name})
	return id
}

// Fix 将变量钉死为指定值，求解器不再决策该变量
func (m *Model) Fix(id VarID, value float64) {
	m.vars[id].Fixed = true
	m.vars[id].FixedValue = value
}

// IsFixed 检查变量是否被钉死
func (m *Model) IsFixed(id VarID) bool {
	return m.vars[id].Fixed
}

// AddConstraint 注册一条线性约束
func (m *Model) AddConstraint(name string, terms []Term, op Op, rhs float64) {
	m.constraints = append(m.constraints, Constraint{Name: name, Terms: terms, Op: op, RHS: rhs})
}

// SetObjective 设置线性目标
func (m *Model) SetObjective(terms []Term, maximize bool) {
	m.objective = terms
	m.maximize = maximize
}

// NumVariables 返回变量数
func (m *Model) NumVariables() int {
	return len(m.vars)
}

// NumConstraints 返回约束数
func (m *Model) NumConstraints() int {
	return len(m.constraints)
}

// NumFixed 返回被钉死的变量数
func (m *Model) NumFixed() int {
	n := 0
	for i := range m.vars {
		if m.vars[i].Fixed {
			n++
		}
	}
	return n
}

// Status 求解终止状态
type Status string

const (
	StatusOptimal    Status = "optimal"    // 已证明最优
	StatusSuboptimal Status = "suboptimal" // 找到可行解但未证明最优
	StatusInfeasible Status = "infeasible" // 已证明无可行解
	StatusUnbounded  Status = "unbounded"  // 目标无界（0/1 变量下不可达，保留用于完整映射）
	StatusUnknown    Status = "unknown"    // 时间预算耗尽且无可行解
)

// Solution 求解结果
// 无可行解时 Objective 为 NaN，Values 全为 0
type Solution struct {
	Status    Status
	Values    []float64
	Objective float64
	Duration  time.Duration
}

// HasSolution 检查是否找到可行解
func (s *Solution) HasSolution() bool {
	return s.Status == StatusOptimal || s.Status == StatusSuboptimal
}

// emptySolution 构造无可行解的结果
func emptySolution(m *Model, status Status, duration time.Duration) *Solution {
	return &Solution{
		Status:    status,
		Values:    make([]float64, m.NumVariables()),
		Objective: math.NaN(),
		Duration:  duration,
	}
}
