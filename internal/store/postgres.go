// Package store 提供班次记录存储的外部边界
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/canban/canban/internal/config"
	"github.com/canban/canban/pkg/errors"
	"github.com/canban/canban/pkg/logger"
	"github.com/canban/canban/pkg/model"

	_ "github.com/lib/pq" // PostgreSQL 驱动
)

// Open 打开数据库连接并配置连接池
func Open(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("数据库连接成功")

	return db, nil
}

// PostgresShiftStore 基于 PostgreSQL 的班次存储
type PostgresShiftStore struct {
	db DB
}

// NewPostgresShiftStore 创建班次存储
func NewPostgresShiftStore(db DB) *PostgresShiftStore {
	return &PostgresShiftStore{db: db}
}

const shiftColumns = `id, staff_member, shift_date, start_time, end_time,
	break_duration_minutes, position, status, assigned_section, notes,
	created_at, updated_at`

// scanShift 从行中扫描班次
func scanShift(row interface{ Scan(...interface{}) error }) (*model.Shift, error) {
	s := &model.Shift{}
	err := row.Scan(
		&s.ID, &s.StaffMember, &s.ShiftDate, &s.StartTime, &s.EndTime,
		&s.BreakMinutes, &s.Position, &s.Status, &s.AssignedSection, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List 查询班次列表
func (r *PostgresShiftStore) List(ctx context.Context, filter ShiftFilter, sort string) ([]*model.Shift, error) {
	orderBy, err := ParseSort(sort)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "排序表达式无效")
	}

	conditions := []string{"deleted_at IS NULL"}
	var args []interface{}
	argIndex := 1

	if filter.StaffMember != nil {
		conditions = append(conditions, fmt.Sprintf("staff_member = $%d", argIndex))
		args = append(args, *filter.StaffMember)
		argIndex++
	}
	if filter.ShiftDate != "" {
		conditions = append(conditions, fmt.Sprintf("shift_date = $%d", argIndex))
		args = append(args, filter.ShiftDate)
		argIndex++
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("shift_date >= $%d", argIndex))
		args = append(args, filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("shift_date <= $%d", argIndex))
		args = append(args, filter.DateTo)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Position != "" {
		conditions = append(conditions, fmt.Sprintf("position = $%d", argIndex))
		args = append(args, filter.Position)
		argIndex++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shifts
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, shiftColumns, strings.Join(conditions, " AND "), orderBy, argIndex, argIndex+1)
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询班次列表失败")
	}
	defer rows.Close()

	var shifts []*model.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "扫描行失败")
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// Get 根据ID获取班次
func (r *PostgresShiftStore) Get(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM shifts
		WHERE id = $1 AND deleted_at IS NULL
	`, shiftColumns)

	s, err := scanShift(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("班次", id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "查询班次失败")
	}

	return s, nil
}

// Create 创建班次（分配ID和时间戳）
func (r *PostgresShiftStore) Create(ctx context.Context, shift *model.Shift) error {
	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	if shift.Status == "" {
		shift.Status = model.StatusScheduled
	}

	query := `
		INSERT INTO shifts (
			id, staff_member, shift_date, start_time, end_time,
			break_duration_minutes, position, status, assigned_section, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.StaffMember, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.BreakMinutes, shift.Position, shift.Status, shift.AssignedSection, shift.Notes,
		shift.CreatedAt, shift.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "创建班次失败")
	}

	return nil
}

// Update 无条件更新班次
func (r *PostgresShiftStore) Update(ctx context.Context, shift *model.Shift) error {
	shift.UpdatedAt = time.Now()

	query := `
		UPDATE shifts SET
			staff_member = $2, shift_date = $3, start_time = $4, end_time = $5,
			break_duration_minutes = $6, position = $7, status = $8,
			assigned_section = $9, notes = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.StaffMember, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.BreakMinutes, shift.Position, shift.Status,
		shift.AssignedSection, shift.Notes, shift.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "更新班次失败")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("班次", shift.ID.String())
	}

	return nil
}

// UpdateGuarded 乐观并发条件更新
//
// 只有记录的 updated_at 仍等于调用方最后读到的时间戳时才写入；
// 并发写已经抢先时返回 STALE_RECORD，调用方应重读快照、
// 重新执行转换/冲突决策后重试。
func (r *PostgresShiftStore) UpdateGuarded(ctx context.Context, shift *model.Shift, lastSeen time.Time) error {
	shift.UpdatedAt = time.Now()

	query := `
		UPDATE shifts SET
			staff_member = $2, shift_date = $3, start_time = $4, end_time = $5,
			break_duration_minutes = $6, position = $7, status = $8,
			assigned_section = $9, notes = $10, updated_at = $11
		WHERE id = $1 AND deleted_at IS NULL AND updated_at = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		shift.ID, shift.StaffMember, shift.ShiftDate, shift.StartTime, shift.EndTime,
		shift.BreakMinutes, shift.Position, shift.Status,
		shift.AssignedSection, shift.Notes, shift.UpdatedAt, lastSeen,
	)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "条件更新班次失败")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.ErrStaleRecord
	}

	return nil
}

// Delete 软删除班次
//
// 已完成的班次不允许删除。
func (r *PostgresShiftStore) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == model.StatusCompleted {
		return errors.ShiftImmutable(string(current.Status))
	}

	query := `UPDATE shifts SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "删除班次失败")
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return errors.NotFound("班次", id.String())
	}

	return nil
}
