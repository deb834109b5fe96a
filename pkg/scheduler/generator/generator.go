// Package generator 提供周模板展开功能
package generator

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/timeutil"
)

// Options 生成选项
type Options struct {
	DefaultBreakMinutes int // 草稿班次的默认休息时长
}

// DefaultOptions 返回默认生成选项
func DefaultOptions() Options {
	return Options{DefaultBreakMinutes: 30}
}

// GenerateWeeklyShifts 将周模板展开为指定员工的具体日期班次草稿
//
// 模板按星期键（monday…sunday）展开，日期为 weekStart 加上
// 该天相对周一的偏移（monday=0）；每条模板记录生成一个
// scheduled 状态的草稿。输出顺序固定：先按星期顺序，再按
// 该天模板内的记录顺序。
//
// 本函数不做冲突检查；员工当周可能已有班次时，
// 草稿必须先经冲突检测再接受。
func GenerateWeeklyShifts(template model.ScheduleTemplate, weekStart string, staffID uuid.UUID, opts Options) ([]*model.Shift, error) {
	if !timeutil.IsValidDate(weekStart) {
		return nil, fmt.Errorf("周起始日期无效: %q", weekStart)
	}
	if staffID == uuid.Nil {
		return nil, fmt.Errorf("员工ID不能为空")
	}

	var drafts []*model.Shift

	for index, day := range model.Weekdays {
		entries, ok := template[day]
		if !ok {
			continue
		}

		date, err := timeutil.AddDays(weekStart, index)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			if _, _, err := timeutil.ShiftSpan(entry.StartTime, entry.EndTime); err != nil {
				return nil, fmt.Errorf("模板 %s 记录无效: %w", day, err)
			}
			if !entry.Position.IsValid() {
				return nil, fmt.Errorf("模板 %s 记录岗位无效: %q", day, entry.Position)
			}

			drafts = append(drafts, &model.Shift{
				BaseModel:    model.NewBaseModel(),
				StaffMember:  staffID,
				ShiftDate:    date,
				StartTime:    entry.StartTime,
				EndTime:      entry.EndTime,
				BreakMinutes: opts.DefaultBreakMinutes,
				Position:     entry.Position,
				Status:       model.StatusScheduled,
			})
		}
	}

	return drafts, nil
}
