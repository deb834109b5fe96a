package generator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
)

func TestGenerateWeeklyShifts(t *testing.T) {
	staffID := uuid.New()
	template := model.ScheduleTemplate{
		"monday": {
			{Position: model.PositionServer, StartTime: "11:00", EndTime: "19:00"},
			{Position: model.PositionServer, StartTime: "17:00", EndTime: "23:00"},
			{Position: model.PositionHost, StartTime: "10:00", EndTime: "16:00"},
		},
		"tuesday": {
			{Position: model.PositionServer, StartTime: "11:00", EndTime: "19:00"},
			{Position: model.PositionChef, StartTime: "09:00", EndTime: "17:00"},
		},
	}

	// 2026-03-02 是周一
	drafts, err := GenerateWeeklyShifts(template, "2026-03-02", staffID, DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateWeeklyShifts() error = %v", err)
	}

	if len(drafts) != 5 {
		t.Fatalf("应生成5个草稿，got %d", len(drafts))
	}

	// 前3个在周一，后2个在周二
	for i := 0; i < 3; i++ {
		if drafts[i].ShiftDate != "2026-03-02" {
			t.Errorf("drafts[%d].ShiftDate = %s, expected 2026-03-02", i, drafts[i].ShiftDate)
		}
	}
	for i := 3; i < 5; i++ {
		if drafts[i].ShiftDate != "2026-03-03" {
			t.Errorf("drafts[%d].ShiftDate = %s, expected 2026-03-03", i, drafts[i].ShiftDate)
		}
	}

	// 天内顺序与模板记录顺序一致
	if drafts[0].StartTime != "11:00" || drafts[1].StartTime != "17:00" || drafts[2].StartTime != "10:00" {
		t.Errorf("周一草稿顺序与模板不一致: %s, %s, %s",
			drafts[0].StartTime, drafts[1].StartTime, drafts[2].StartTime)
	}

	for i, d := range drafts {
		if d.Status != model.StatusScheduled {
			t.Errorf("drafts[%d].Status = %s, expected scheduled", i, d.Status)
		}
		if d.StaffMember != staffID {
			t.Errorf("drafts[%d] 员工不匹配", i)
		}
		if d.BreakMinutes != 30 {
			t.Errorf("drafts[%d].BreakMinutes = %d, expected 30", i, d.BreakMinutes)
		}
	}
}

func TestGenerateWeeklyShifts_SundayOffset(t *testing.T) {
	template := model.ScheduleTemplate{
		"sunday": {
			{Position: model.PositionManager, StartTime: "09:00", EndTime: "17:00"},
		},
	}

	drafts, err := GenerateWeeklyShifts(template, "2026-03-02", uuid.New(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateWeeklyShifts() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("应生成1个草稿，got %d", len(drafts))
	}
	if drafts[0].ShiftDate != "2026-03-08" {
		t.Errorf("周日日期 = %s, expected 2026-03-08", drafts[0].ShiftDate)
	}
}

func TestGenerateWeeklyShifts_EmptyTemplate(t *testing.T) {
	drafts, err := GenerateWeeklyShifts(model.ScheduleTemplate{}, "2026-03-02", uuid.New(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateWeeklyShifts() error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("空模板应生成0个草稿，got %d", len(drafts))
	}
}

func TestGenerateWeeklyShifts_InvalidInputs(t *testing.T) {
	template := model.ScheduleTemplate{
		"monday": {{Position: model.PositionServer, StartTime: "11:00", EndTime: "19:00"}},
	}

	if _, err := GenerateWeeklyShifts(template, "03/02/2026", uuid.New(), DefaultOptions()); err == nil {
		t.Error("无效周起始日期应返回错误")
	}

	if _, err := GenerateWeeklyShifts(template, "2026-03-02", uuid.Nil, DefaultOptions()); err == nil {
		t.Error("空员工ID应返回错误")
	}

	bad := model.ScheduleTemplate{
		"monday": {{Position: model.PositionServer, StartTime: "11am", EndTime: "19:00"}},
	}
	if _, err := GenerateWeeklyShifts(bad, "2026-03-02", uuid.New(), DefaultOptions()); err == nil {
		t.Error("模板时间格式错误应返回错误")
	}

	badPos := model.ScheduleTemplate{
		"monday": {{Position: "sommelier", StartTime: "11:00", EndTime: "19:00"}},
	}
	if _, err := GenerateWeeklyShifts(badPos, "2026-03-02", uuid.New(), DefaultOptions()); err == nil {
		t.Error("模板岗位非法应返回错误")
	}
}

func TestGenerateWeeklyShifts_OvernightEntry(t *testing.T) {
	template := model.ScheduleTemplate{
		"friday": {{Position: model.PositionBartender, StartTime: "22:00", EndTime: "04:00"}},
	}

	drafts, err := GenerateWeeklyShifts(template, "2026-03-02", uuid.New(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateWeeklyShifts() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("应生成1个草稿，got %d", len(drafts))
	}
	if drafts[0].ShiftDate != "2026-03-06" {
		t.Errorf("周五日期 = %s, expected 2026-03-06", drafts[0].ShiftDate)
	}
	if !drafts[0].IsOvernight() {
		t.Error("22:00-04:00 应为跨天班次")
	}
}
