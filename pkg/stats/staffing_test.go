package stats

import (
	"testing"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
)

func makeShift(date, start, end string, position model.Position, status model.ShiftStatus) *model.Shift {
	return &model.Shift{
		BaseModel:   model.NewBaseModel(),
		StaffMember: uuid.New(),
		ShiftDate:   date,
		StartTime:   start,
		EndTime:     end,
		Position:    position,
		Status:      status,
	}
}

func TestComputeStaffingLevels(t *testing.T) {
	window := DefaultSlotWindow()

	shifts := []*model.Shift{
		makeShift("2026-03-02", "17:00", "23:00", model.PositionServer, model.StatusScheduled),
		makeShift("2026-03-02", "17:30", "23:30", model.PositionBartender, model.StatusScheduled),
	}

	levels := ComputeStaffingLevels(shifts, window)

	// 18:00 段两个岗位各1人
	if got := levels.CountAt("18:00", model.PositionServer); got != 1 {
		t.Errorf("18:00 server = %d, expected 1", got)
	}
	if got := levels.CountAt("18:00", model.PositionBartender); got != 1 {
		t.Errorf("18:00 bartender = %d, expected 1", got)
	}

	// 17:00 段：17:30 开始的班次也触及该段
	if got := levels.TotalAt("17:00"); got != 2 {
		t.Errorf("17:00 total = %d, expected 2", got)
	}

	// 23:00 段：17:00-23:00 恰好结束，不计入；17:30-23:30 计入
	if got := levels.CountAt("23:00", model.PositionServer); got != 0 {
		t.Errorf("23:00 server = %d, expected 0", got)
	}
	if got := levels.CountAt("23:00", model.PositionBartender); got != 1 {
		t.Errorf("23:00 bartender = %d, expected 1", got)
	}
}

func TestComputeStaffingLevels_Overnight(t *testing.T) {
	window := DefaultSlotWindow()

	shifts := []*model.Shift{
		makeShift("2026-03-02", "22:00", "02:00", model.PositionChef, model.StatusScheduled),
	}

	levels := ComputeStaffingLevels(shifts, window)

	for _, slot := range []string{"22:00", "23:00", "00:00", "01:00"} {
		if got := levels.CountAt(slot, model.PositionChef); got != 1 {
			t.Errorf("%s chef = %d, expected 1", slot, got)
		}
	}
	if got := levels.CountAt("02:00", model.PositionChef); got != 0 {
		t.Errorf("02:00 chef = %d, expected 0", got)
	}
}

func TestComputeStaffingLevels_PartialHours(t *testing.T) {
	window := DefaultSlotWindow()

	// 首尾都不在整点：触及 9:00 和 10:00 两段
	shifts := []*model.Shift{
		makeShift("2026-03-02", "09:15", "10:45", model.PositionHost, model.StatusScheduled),
	}

	levels := ComputeStaffingLevels(shifts, window)

	for _, slot := range []string{"09:00", "10:00"} {
		if got := levels.CountAt(slot, model.PositionHost); got != 1 {
			t.Errorf("%s host = %d, expected 1", slot, got)
		}
	}
	if got := levels.TotalAt("11:00"); got != 0 {
		t.Errorf("11:00 total = %d, expected 0", got)
	}
	if got := levels.TotalAt("08:00"); got != 0 {
		t.Errorf("08:00 total = %d, expected 0", got)
	}
}

func TestComputeStaffingLevels_SkipsCancelled(t *testing.T) {
	window := DefaultSlotWindow()

	shifts := []*model.Shift{
		makeShift("2026-03-02", "17:00", "23:00", model.PositionServer, model.StatusCancelled),
	}

	levels := ComputeStaffingLevels(shifts, window)
	if got := levels.TotalAt("18:00"); got != 0 {
		t.Errorf("已取消班次不应计入，got %d", got)
	}
}

func TestComputeStaffingLevels_WindowClipping(t *testing.T) {
	window := DefaultSlotWindow()

	// 凌晨 3:00-5:00 在默认窗口外
	shifts := []*model.Shift{
		makeShift("2026-03-02", "03:00", "05:00", model.PositionKitchenPrep, model.StatusScheduled),
	}

	levels := ComputeStaffingLevels(shifts, window)
	if len(levels) != 0 {
		t.Errorf("窗口外的班次不应产生小时段，got %v", levels)
	}
}

func TestComputeStaffingLevels_SumInvariant(t *testing.T) {
	window := DefaultSlotWindow()

	shifts := []*model.Shift{
		makeShift("2026-03-02", "10:00", "18:00", model.PositionServer, model.StatusScheduled),
		makeShift("2026-03-02", "11:00", "15:00", model.PositionChef, model.StatusScheduled),
		makeShift("2026-03-02", "12:30", "20:30", model.PositionHost, model.StatusConfirmed),
	}

	levels := ComputeStaffingLevels(shifts, window)

	// 任意小时段各岗位之和不应超过触及该段的班次总数
	for slot := range levels {
		if total := levels.TotalAt(slot); total > len(shifts) {
			t.Errorf("%s 总人数 %d 超过班次总数 %d", slot, total, len(shifts))
		}
	}

	// 14:00 段三个班次都在班
	if got := levels.TotalAt("14:00"); got != 3 {
		t.Errorf("14:00 total = %d, expected 3", got)
	}
}
