// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/zhipai/zhipai/pkg/errors"
)

// SolveRun 一次求解调用的归档记录
// 只存诊断信息，不存业务数据
type SolveRun struct {
	ID                uuid.UUID       `json:"id"`
	Provider          string          `json:"provider"`
	Status            string          `json:"status"`
	Variables         int             `json:"variables"`
	FixedVariables    int             `json:"fixed_variables"`
	Constraints       int             `json:"constraints"`
	ActiveWorkers     int             `json:"active_workers"`
	TotalWorkers      int             `json:"total_workers"`
	AvailabilityUsage float64         `json:"availability_usage"`
	Objective         sql.NullFloat64 `json:"objective"` // 无可行解时为 NULL
	SolveSeconds      float64         `json:"solve_seconds"`
	RunSeconds        float64         `json:"run_seconds"`
	CreatedAt         time.Time       `json:"created_at"`
}

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// RunRepository 求解记录仓储
type RunRepository struct {
	db DB
}

// NewRunRepository 创建求解记录仓储
func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

const createRunTableSQL = `
CREATE TABLE IF NOT EXISTS solve_runs (
	id                 UUID PRIMARY KEY,
	provider           TEXT NOT NULL,
	status             TEXT NOT NULL,
	variables          INTEGER NOT NULL,
	fixed_variables    INTEGER NOT NULL,
	constraints        INTEGER NOT NULL,
	active_workers     INTEGER NOT NULL,
	total_workers      INTEGER NOT NULL,
	availability_usage DOUBLE PRECISION NOT NULL,
	objective          DOUBLE PRECISION,
	solve_seconds      DOUBLE PRECISION NOT NULL,
	run_seconds        DOUBLE PRECISION NOT NULL,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// EnsureSchema 创建归档表（幂等）
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRunTableSQL); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "创建归档表失败")
	}
	return nil
}

// Save 写入一条求解记录
func (r *RunRepository) Save(ctx context.Context, run *SolveRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO solve_runs (
			id, provider, status, variables, fixed_variables, constraints,
			active_workers, total_workers, availability_usage,
			objective, solve_seconds, run_seconds, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		run.ID, run.Provider, run.Status,
		run.Variables, run.FixedVariables, run.Constraints,
		run.ActiveWorkers, run.TotalWorkers, run.AvailabilityUsage,
		run.Objective, run.SolveSeconds, run.RunSeconds, run.CreatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "写入求解记录失败")
	}
	return nil
}

// GetByID 按标识读取求解记录
func (r *RunRepository) GetByID(ctx context.Context, id uuid.UUID) (*SolveRun, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, provider, status, variables, fixed_variables, constraints,
			active_workers, total_workers, availability_usage,
			objective, solve_seconds, run_seconds, created_at
		FROM solve_runs WHERE id = $1`, id)

	var run SolveRun
	err := row.Scan(
		&run.ID, &run.Provider, &run.Status,
		&run.Variables, &run.FixedVariables, &run.Constraints,
		&run.ActiveWorkers, &run.TotalWorkers, &run.AvailabilityUsage,
		&run.Objective, &run.SolveSeconds, &run.RunSeconds, &run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "读取求解记录失败")
	}
	return &run, nil
}

// ListRecent 按时间倒序列出最近的求解记录
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*SolveRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, provider, status, variables, fixed_variables, constraints,
			active_workers, total_workers, availability_usage,
			objective, solve_seconds, run_seconds, created_at
		FROM solve_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询求解记录失败")
	}
	defer rows.Close()

	var runs []*SolveRun
	for rows.Next() {
		var run SolveRun
		if err := rows.Scan(
			&run.ID, &run.Provider, &run.Status,
			&run.Variables, &run.FixedVariables, &run.Constraints,
			&run.ActiveWorkers, &run.TotalWorkers, &run.AvailabilityUsage,
			&run.Objective, &run.SolveSeconds, &run.RunSeconds, &run.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "扫描求解记录失败")
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "遍历求解记录失败")
	}
	return runs, nil
}
