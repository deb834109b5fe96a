// Package stats 提供排班人力覆盖分析功能
package stats

import (
	"github.com/canban/canban/pkg/model"
)

// CoverageGap 人力缺口：某小时段某岗位的在班人数低于最低要求
//
// 每次分析即时计算，不落库；有缺口只是诊断结论，不是错误。
type CoverageGap struct {
	HourSlot string         `json:"hour_slot"`
	Position model.Position `json:"position"`
	Required int            `json:"required"`
	Current  int            `json:"current"`
	Shortage int            `json:"shortage"`
}

// FindGaps 比较人力需求与实际在班人数，报告所有缺口
//
// 仅对需求中出现的 (小时段, 岗位) 组合判断；在班人数缺失按 0；
// 达到或超过要求的不产生记录（超配由调用方另行关注）。
// 输出顺序与需求输入顺序一致。纯诊断，不做任何指派。
func FindGaps(requirements *model.StaffingRequirement, levels StaffingLevels) []CoverageGap {
	var gaps []CoverageGap

	for _, slot := range requirements.Slots {
		if slot.MinCount <= 0 {
			continue
		}

		current := levels.CountAt(slot.HourSlot, slot.Position)
		if current >= slot.MinCount {
			continue
		}

		gaps = append(gaps, CoverageGap{
			HourSlot: slot.HourSlot,
			Position: slot.Position,
			Required: slot.MinCount,
			Current:  current,
			Shortage: slot.MinCount - current,
		})
	}

	return gaps
}
