// Package payroll 提供工时与人力成本计算功能
package payroll

import (
	"math"

	"github.com/canban/canban/pkg/model"
)

// CostBreakdown 人力成本汇总
type CostBreakdown struct {
	ByPosition map[model.Position]float64 `json:"by_position"`
	Total      float64                    `json:"total"`
}

// ShiftHours 计算单个班次的实际工时（小时）
//
// 归一化区间时长扣除休息时间后除以60，保留两位小数；
// 跨天夜班经归一化后同样正确。
func ShiftHours(shift *model.Shift) (float64, error) {
	start, end, err := shift.Span()
	if err != nil {
		return 0, err
	}

	worked := end - start - shift.BreakMinutes
	if worked < 0 {
		worked = 0
	}

	return round2(float64(worked) / 60), nil
}

// WeeklyHours 计算班次集合的总工时
//
// 调用方负责把集合过滤到单个员工单个自然周；
// 时间无法解析的班次跳过不计。
func WeeklyHours(shifts []*model.Shift) float64 {
	var total float64
	for _, s := range shifts {
		hours, err := ShiftHours(s)
		if err != nil {
			continue
		}
		total += hours
	}
	return round2(total)
}

// OvertimeHours 计算超过标准周工时的加班时数
//
// 标准周工时因地区和合同而异，由配置传入，不在此硬编码。
func OvertimeHours(weeklyHours, standardHours float64) float64 {
	return round2(math.Max(0, weeklyHours-standardHours))
}

// LaborCost 按岗位时薪计算班次集合的直接人力成本
//
// 只算平时工资；加班溢价（如1.5倍）由调用方对已识别的
// 加班时数单独叠加，保持两步可组合。
func LaborCost(shifts []*model.Shift, hourlyRates map[model.Position]float64) *CostBreakdown {
	breakdown := &CostBreakdown{
		ByPosition: make(map[model.Position]float64),
	}

	for _, s := range shifts {
		hours, err := ShiftHours(s)
		if err != nil {
			continue
		}

		cost := hours * hourlyRates[s.Position]
		breakdown.ByPosition[s.Position] = round2(breakdown.ByPosition[s.Position] + cost)
		breakdown.Total += cost
	}

	breakdown.Total = round2(breakdown.Total)
	return breakdown
}

// round2 四舍五入到两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
