// Package store 提供班次记录存储的外部边界
//
// 核心计算包不做任何持久化；本包按 集合式 list/get/create/update
// 的能力接口访问记录存储，并提供乐观并发保护的条件更新，
// 让基于过期快照做出的决定被存储拒绝而不是被悄悄写入。
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
)

// ShiftFilter 班次列表过滤器
//
// 简单字段谓词：等值、日期范围、状态、岗位。
type ShiftFilter struct {
	StaffMember *uuid.UUID `json:"staff_member,omitempty"`
	ShiftDate   string     `json:"shift_date,omitempty"`
	DateFrom    string     `json:"date_from,omitempty"`
	DateTo      string     `json:"date_to,omitempty"`
	Status      string     `json:"status,omitempty"`
	Position    string     `json:"position,omitempty"`
	Offset      int        `json:"offset"`
	Limit       int        `json:"limit"`
}

// DefaultShiftFilter 返回默认过滤器
func DefaultShiftFilter() ShiftFilter {
	return ShiftFilter{Offset: 0, Limit: 50}
}

// WithStaffMember 设置员工过滤
func (f ShiftFilter) WithStaffMember(id uuid.UUID) ShiftFilter {
	f.StaffMember = &id
	return f
}

// WithDateRange 设置日期范围
func (f ShiftFilter) WithDateRange(from, to string) ShiftFilter {
	f.DateFrom = from
	f.DateTo = to
	return f
}

// WithStatus 设置状态过滤
func (f ShiftFilter) WithStatus(status string) ShiftFilter {
	f.Status = status
	return f
}

// sortableFields 允许排序的字段白名单
var sortableFields = map[string]string{
	"shift_date": "shift_date",
	"start_time": "start_time",
	"end_time":   "end_time",
	"position":   "position",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// ParseSort 解析排序表达式
//
// 逗号分隔的字段名，前缀 '-' 表示降序（如 "shift_date,-start_time"）；
// 白名单之外的字段报错，空表达式使用默认排序。
func ParseSort(sort string) (string, error) {
	if strings.TrimSpace(sort) == "" {
		return "shift_date ASC, start_time ASC", nil
	}

	var clauses []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}

		column, ok := sortableFields[field]
		if !ok {
			return "", fmt.Errorf("不支持的排序字段: %q", field)
		}
		clauses = append(clauses, column+" "+dir)
	}

	if len(clauses) == 0 {
		return "shift_date ASC, start_time ASC", nil
	}
	return strings.Join(clauses, ", "), nil
}

// ShiftStore 班次记录存储能力
type ShiftStore interface {
	List(ctx context.Context, filter ShiftFilter, sort string) ([]*model.Shift, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	Create(ctx context.Context, shift *model.Shift) error
	Update(ctx context.Context, shift *model.Shift) error
	// UpdateGuarded 条件更新：记录的 updated_at 与最后读到的
	// 时间戳不一致时拒绝写入，调用方需重读快照并重新决策。
	UpdateGuarded(ctx context.Context, shift *model.Shift, lastSeen time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}
