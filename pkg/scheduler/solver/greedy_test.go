package solver

import (
	"testing"

	"github.com/canban/canban/pkg/model"
)

func makeStaff(name string, position model.Position, rate float64) *model.StaffMember {
	return &model.StaffMember{
		BaseModel:  model.NewBaseModel(),
		Name:       name,
		Position:   position,
		HourlyRate: rate,
		Status:     "active",
	}
}

func TestGreedyOptimizer_Optimize(t *testing.T) {
	staff := []*model.StaffMember{
		makeStaff("小张", model.PositionServer, 25),
		makeStaff("小李", model.PositionServer, 30),
		makeStaff("小王", model.PositionChef, 40),
	}

	req := &model.StaffingRequirement{Slots: []model.SlotRequirement{
		{HourSlot: "18:00", Position: model.PositionServer, MinCount: 2},
		{HourSlot: "18:00", Position: model.PositionChef, MinCount: 1},
	}}

	result := NewGreedyOptimizer().Optimize(req, staff)

	if result.AssignedCount != 3 || result.RequiredCount != 3 {
		t.Errorf("assigned/required = %d/%d, expected 3/3", result.AssignedCount, result.RequiredCount)
	}
	if result.CoveragePercentage != 100 {
		t.Errorf("覆盖率 = %.1f, expected 100", result.CoveragePercentage)
	}
	if result.TotalCost != 95 {
		t.Errorf("总成本 = %.1f, expected 95", result.TotalCost)
	}

	// 员工按输入顺序选取：服务员先选小张再选小李
	if result.Assignments[0].StaffName != "小张" || result.Assignments[1].StaffName != "小李" {
		t.Errorf("指派顺序应与员工输入顺序一致: %+v", result.Assignments)
	}
}

func TestGreedyOptimizer_PartialCoverage(t *testing.T) {
	staff := []*model.StaffMember{
		makeStaff("小张", model.PositionServer, 25),
	}

	req := &model.StaffingRequirement{Slots: []model.SlotRequirement{
		{HourSlot: "18:00", Position: model.PositionServer, MinCount: 2},
		{HourSlot: "18:00", Position: model.PositionBartender, MinCount: 2},
	}}

	result := NewGreedyOptimizer().Optimize(req, staff)

	if result.AssignedCount != 1 {
		t.Errorf("指派人次 = %d, expected 1", result.AssignedCount)
	}
	if result.CoveragePercentage != 25 {
		t.Errorf("覆盖率 = %.1f, expected 25", result.CoveragePercentage)
	}
	if result.TotalCost != 25 {
		t.Errorf("总成本 = %.1f, expected 25", result.TotalCost)
	}
}

func TestGreedyOptimizer_SkipsInactive(t *testing.T) {
	leaver := makeStaff("小赵", model.PositionServer, 20)
	leaver.Status = "inactive"

	staff := []*model.StaffMember{
		leaver,
		makeStaff("小张", model.PositionServer, 25),
	}

	req := &model.StaffingRequirement{Slots: []model.SlotRequirement{
		{HourSlot: "18:00", Position: model.PositionServer, MinCount: 1},
	}}

	result := NewGreedyOptimizer().Optimize(req, staff)

	if len(result.Assignments) != 1 || result.Assignments[0].StaffName != "小张" {
		t.Errorf("应跳过离职员工: %+v", result.Assignments)
	}
}

func TestGreedyOptimizer_EmptyRequirements(t *testing.T) {
	result := NewGreedyOptimizer().Optimize(&model.StaffingRequirement{}, nil)

	if result.CoveragePercentage != 100 {
		t.Errorf("空需求覆盖率 = %.1f, expected 100", result.CoveragePercentage)
	}
	if result.TotalCost != 0 {
		t.Errorf("空需求成本 = %.1f, expected 0", result.TotalCost)
	}
}

func TestGreedyOptimizer_Deterministic(t *testing.T) {
	staff := []*model.StaffMember{
		makeStaff("小张", model.PositionServer, 25),
		makeStaff("小李", model.PositionServer, 30),
	}
	req := &model.StaffingRequirement{Slots: []model.SlotRequirement{
		{HourSlot: "18:00", Position: model.PositionServer, MinCount: 1},
		{HourSlot: "19:00", Position: model.PositionServer, MinCount: 1},
	}}

	a := NewGreedyOptimizer().Optimize(req, staff)
	b := NewGreedyOptimizer().Optimize(req, staff)

	if a.TotalCost != b.TotalCost || a.AssignedCount != b.AssignedCount {
		t.Error("相同输入应得到相同结果")
	}
	for i := range a.Assignments {
		if a.Assignments[i] != b.Assignments[i] {
			t.Errorf("指派[%d] 不确定: %+v vs %+v", i, a.Assignments[i], b.Assignments[i])
		}
	}
}
