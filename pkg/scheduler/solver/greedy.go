// Package solver 提供覆盖-成本贪心优化器
package solver

import (
	"time"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/logger"
	"github.com/canban/canban/pkg/model"
)

// Assignment 优化器给出的单条指派
type Assignment struct {
	HourSlot   string         `json:"hour_slot"`
	Position   model.Position `json:"position"`
	StaffID    uuid.UUID      `json:"staff_id"`
	StaffName  string         `json:"staff_name,omitempty"`
	HourlyRate float64        `json:"hourly_rate"`
}

// Result 优化结果
type Result struct {
	TotalCost          float64       `json:"total_cost"`
	CoveragePercentage float64       `json:"coverage_percentage"`
	Assignments        []Assignment  `json:"assignments"`
	RequiredCount      int           `json:"required_count"`
	AssignedCount      int           `json:"assigned_count"`
	Duration           time.Duration `json:"-"`
}

// GreedyOptimizer 贪心覆盖优化器
//
// 快速规划辅助，不是精确求解器：按需求输入顺序处理，
// 员工按输入顺序选取，结果确定但不保证成本最优；
// 不考虑员工周工时上限和既有班次冲突，
// 需要最优解的调用方应在此结果之上叠加真正的指派求解。
type GreedyOptimizer struct {
	logger *logger.RosterLogger
}

// NewGreedyOptimizer 创建贪心覆盖优化器
func NewGreedyOptimizer() *GreedyOptimizer {
	return &GreedyOptimizer{logger: logger.NewRosterLogger()}
}

// Optimize 贪心指派可用员工以满足各小时段岗位需求
//
// 对每条 (小时段, 岗位, 人数) 需求，从可用员工中按输入顺序
// 选取岗位匹配的在职员工，最多取足所需人数；
// 成本累加 指派人数 × 时薪，覆盖率 = 指派人次 / 需求总人次 × 100。
func (o *GreedyOptimizer) Optimize(requirements *model.StaffingRequirement, availableStaff []*model.StaffMember) *Result {
	startTime := time.Now()

	result := &Result{
		Assignments:   make([]Assignment, 0),
		RequiredCount: requirements.TotalRequired(),
	}

	for _, slot := range requirements.Slots {
		assigned := 0

		for _, staff := range availableStaff {
			if assigned >= slot.MinCount {
				break
			}
			if !staff.IsActive() {
				continue
			}
			if staff.Position != slot.Position {
				continue
			}

			result.Assignments = append(result.Assignments, Assignment{
				HourSlot:   slot.HourSlot,
				Position:   slot.Position,
				StaffID:    staff.ID,
				StaffName:  staff.Name,
				HourlyRate: staff.HourlyRate,
			})
			result.TotalCost += staff.HourlyRate
			assigned++
		}

		result.AssignedCount += assigned
	}

	if result.RequiredCount > 0 {
		result.CoveragePercentage = float64(result.AssignedCount) / float64(result.RequiredCount) * 100
	} else {
		result.CoveragePercentage = 100
	}

	result.Duration = time.Since(startTime)
	o.logger.OptimizeComplete(result.Duration, result.CoveragePercentage, result.TotalCost)

	return result
}
