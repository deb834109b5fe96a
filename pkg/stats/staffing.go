// Package stats 提供排班人力覆盖分析功能
package stats

import (
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/timeutil"
)

// SlotWindow 小时段统计窗口
//
// 默认 6:00–26:00（即次日 2:00），覆盖深夜营业时段；
// 超过 24 的小时对应次日凌晨，标签按 mod 24 回绕。
type SlotWindow struct {
	StartHour int // 含
	EndHour   int // 不含，可超过 24
}

// DefaultSlotWindow 返回默认统计窗口
func DefaultSlotWindow() SlotWindow {
	return SlotWindow{StartHour: 6, EndHour: 26}
}

// contains 检查小时（含回绕）是否落在窗口内
func (w SlotWindow) contains(hour int) bool {
	if hour >= w.StartHour && hour < w.EndHour {
		return true
	}
	// 凌晨时段按 +24 再查一次（例如 1:00 对应 25:00）
	return hour+24 < w.EndHour
}

// StaffingLevels 各小时段各岗位的在班人数：HH:00 -> 岗位 -> 人数
type StaffingLevels map[string]map[model.Position]int

// CountAt 返回某小时段某岗位的在班人数（缺失为0）
func (l StaffingLevels) CountAt(hourSlot string, position model.Position) int {
	return l[hourSlot][position]
}

// TotalAt 返回某小时段所有岗位的在班总人数
func (l StaffingLevels) TotalAt(hourSlot string) int {
	total := 0
	for _, count := range l[hourSlot] {
		total += count
	}
	return total
}

// ComputeStaffingLevels 将班次集合转换为各小时段各岗位的在班人数
//
// 每个班次按归一化区间逐小时边界遍历，触及某小时段的任意
// 部分即计入该段：17:30–23:30 计入 17:00 到 23:00 的每一段
// （按小时粒度做排班决策时有意高估首尾零散分钟）。
// 已取消的班次不计入。
func ComputeStaffingLevels(shifts []*model.Shift, window SlotWindow) StaffingLevels {
	levels := make(StaffingLevels)

	for _, shift := range shifts {
		if shift.Status == model.StatusCancelled {
			continue
		}

		start, end, err := shift.Span()
		if err != nil {
			continue
		}

		for hour := start / 60; hour*60 < end; hour++ {
			if !window.contains(hour % 24) {
				continue
			}

			slot := timeutil.FormatClock((hour % 24) * 60)
			if levels[slot] == nil {
				levels[slot] = make(map[model.Position]int)
			}
			levels[slot][shift.Position]++
		}
	}

	return levels
}
