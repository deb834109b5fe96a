// Package model 定义餐厅排班的核心数据模型
package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/errors"
	"github.com/canban/canban/pkg/timeutil"
)

// Position 岗位
type Position string

const (
	PositionManager     Position = "manager"      // 经理
	PositionServer      Position = "server"       // 服务员
	PositionChef        Position = "chef"         // 厨师
	PositionBartender   Position = "bartender"    // 调酒师
	PositionHost        Position = "host"         // 迎宾
	PositionBusser      Position = "busser"       // 传菜员
	PositionDishwasher  Position = "dishwasher"   // 洗碗工
	PositionKitchenPrep Position = "kitchen_prep" // 备菜员
	PositionOwner       Position = "owner"        // 店主
)

// AllPositions 所有合法岗位
var AllPositions = []Position{
	PositionManager, PositionServer, PositionChef, PositionBartender,
	PositionHost, PositionBusser, PositionDishwasher, PositionKitchenPrep,
	PositionOwner,
}

// IsValid 检查岗位是否合法
func (p Position) IsValid() bool {
	for _, v := range AllPositions {
		if v == p {
			return true
		}
	}
	return false
}

// Shift 班次（核心实体）
//
// EndTime 数值上早于 StartTime 表示跨天夜班，
// 所有时长/重叠计算必须经 timeutil.ShiftSpan 归一化。
type Shift struct {
	BaseModel
	StaffMember     uuid.UUID   `json:"staff_member" db:"staff_member"`
	ShiftDate       string      `json:"shift_date" db:"shift_date"` // YYYY-MM-DD
	StartTime       string      `json:"start_time" db:"start_time"` // HH:MM
	EndTime         string      `json:"end_time" db:"end_time"`     // HH:MM
	BreakMinutes    int         `json:"break_duration_minutes" db:"break_duration_minutes"`
	Position        Position    `json:"position" db:"position"`
	Status          ShiftStatus `json:"status" db:"status"`
	AssignedSection *uuid.UUID  `json:"assigned_section,omitempty" db:"assigned_section"`
	Notes           string      `json:"notes,omitempty" db:"notes"`
}

// ValidationLimits 字段验证阈值
type ValidationLimits struct {
	MaxBreakRatio float64 // 休息占班次总时长的最大比例
	MaxNotesLen   int     // 备注最大长度
}

// DefaultValidationLimits 返回默认验证阈值
func DefaultValidationLimits() ValidationLimits {
	return ValidationLimits{
		MaxBreakRatio: 0.5,
		MaxNotesLen:   500,
	}
}

// Validate 校验班次字段
//
// 返回的验证错误集合始终可由调用方修正输入后重试，不视为系统故障。
func (s *Shift) Validate(limits ValidationLimits) *errors.ValidationErrors {
	ve := &errors.ValidationErrors{}

	if s.StaffMember == uuid.Nil {
		ve.Add("staff_member", "员工不能为空")
	}

	if !timeutil.IsValidDate(s.ShiftDate) {
		ve.Add("shift_date", fmt.Sprintf("日期格式无效: %q", s.ShiftDate))
	}

	if !s.Position.IsValid() {
		ve.Add("position", fmt.Sprintf("岗位无效: %q", s.Position))
	}

	if !s.Status.IsValid() {
		ve.Add("status", fmt.Sprintf("状态无效: %q", s.Status))
	}

	if s.BreakMinutes < 0 {
		ve.Add("break_duration_minutes", "休息时长不能为负")
	}

	if len(s.Notes) > limits.MaxNotesLen {
		ve.Add("notes", fmt.Sprintf("备注超过 %d 字符", limits.MaxNotesLen))
	}

	span, err := timeutil.SpanMinutes(s.StartTime, s.EndTime)
	if err != nil {
		ve.Add("start_time", err.Error())
		return ve
	}

	// 休息时长必须与班次总时长相称
	if s.BreakMinutes >= span {
		ve.Add("break_duration_minutes",
			fmt.Sprintf("休息 %d 分钟不少于班次总时长 %d 分钟", s.BreakMinutes, span))
	} else if float64(s.BreakMinutes) > float64(span)*limits.MaxBreakRatio {
		ve.Add("break_duration_minutes",
			fmt.Sprintf("休息 %d 分钟超过班次总时长的 %.0f%%", s.BreakMinutes, limits.MaxBreakRatio*100))
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// Span 返回归一化后的分钟区间
func (s *Shift) Span() (int, int, error) {
	return timeutil.ShiftSpan(s.StartTime, s.EndTime)
}

// IsOnDate 检查班次是否在指定日期
func (s *Shift) IsOnDate(date string) bool {
	return s.ShiftDate == date
}

// IsOvernight 检查是否为跨天夜班
func (s *Shift) IsOvernight() bool {
	startMin, err1 := timeutil.ParseClock(s.StartTime)
	endMin, err2 := timeutil.ParseClock(s.EndTime)
	if err1 != nil || err2 != nil {
		return false
	}
	return endMin <= startMin
}
