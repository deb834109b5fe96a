package validator

import (
	"testing"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
)

func makeShift(staffID uuid.UUID, date, start, end string, status model.ShiftStatus) *model.Shift {
	return &model.Shift{
		BaseModel:   model.NewBaseModel(),
		StaffMember: staffID,
		ShiftDate:   date,
		StartTime:   start,
		EndTime:     end,
		Position:    model.PositionServer,
		Status:      status,
	}
}

func TestHasConflict(t *testing.T) {
	staffID := uuid.New()

	tests := []struct {
		name      string
		existing  []*model.Shift
		candidate *model.Shift
		expect    bool
	}{
		{
			name:      "无既有班次",
			existing:  nil,
			candidate: makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
			expect:    false,
		},
		{
			name: "部分重叠",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
			},
			candidate: makeShift(staffID, "2026-03-02", "15:00", "22:00", model.StatusScheduled),
			expect:    true,
		},
		{
			name: "首尾相接不冲突",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
			},
			candidate: makeShift(staffID, "2026-03-02", "17:00", "23:00", model.StatusScheduled),
			expect:    false,
		},
		{
			name: "不同日期不冲突",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
			},
			candidate: makeShift(staffID, "2026-03-03", "09:00", "17:00", model.StatusScheduled),
			expect:    false,
		},
		{
			name: "已取消的班次不参与检测",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusCancelled),
			},
			candidate: makeShift(staffID, "2026-03-02", "10:00", "18:00", model.StatusScheduled),
			expect:    false,
		},
		{
			name: "跨天夜班与同日晚班冲突",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "17:00", "23:00", model.StatusScheduled),
			},
			candidate: makeShift(staffID, "2026-03-02", "20:00", "02:00", model.StatusScheduled),
			expect:    true,
		},
		{
			name: "已确认的班次同样参与检测",
			existing: []*model.Shift{
				makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusConfirmed),
			},
			candidate: makeShift(staffID, "2026-03-02", "12:00", "20:00", model.StatusScheduled),
			expect:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasConflict(tt.existing, tt.candidate); got != tt.expect {
				t.Errorf("HasConflict() = %v, expected %v", got, tt.expect)
			}
		})
	}
}

func TestHasConflict_Symmetry(t *testing.T) {
	staffID := uuid.New()
	a := makeShift(staffID, "2026-03-02", "17:00", "23:00", model.StatusScheduled)
	b := makeShift(staffID, "2026-03-02", "20:00", "02:00", model.StatusScheduled)

	if HasConflict([]*model.Shift{a}, b) != HasConflict([]*model.Shift{b}, a) {
		t.Error("冲突检测应对称")
	}
}

func TestHasConflict_NextDayShift(t *testing.T) {
	staffID := uuid.New()
	// 次日的班次即使时刻上落在夜班归一化区间内，也不与当日班次冲突
	existing := []*model.Shift{
		makeShift(staffID, "2026-03-02", "17:00", "23:00", model.StatusScheduled),
	}
	nextDay := makeShift(staffID, "2026-03-03", "00:30", "02:00", model.StatusScheduled)

	if HasConflict(existing, nextDay) {
		t.Error("次日班次不应与仅限当日的班次冲突")
	}
}

func TestHasConflict_IgnoresSelf(t *testing.T) {
	staffID := uuid.New()
	shift := makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled)

	if HasConflict([]*model.Shift{shift}, shift) {
		t.Error("班次不应与其自身冲突")
	}
}

func TestFindConflicts_Details(t *testing.T) {
	staffID := uuid.New()
	existing := []*model.Shift{
		makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
		makeShift(staffID, "2026-03-02", "18:00", "22:00", model.StatusScheduled),
	}
	candidate := makeShift(staffID, "2026-03-02", "16:00", "19:00", model.StatusScheduled)

	conflicts := FindConflicts(existing, candidate)
	if len(conflicts) != 2 {
		t.Fatalf("应检测到2个冲突，got %d", len(conflicts))
	}
	if conflicts[0].ExistingID != existing[0].ID {
		t.Error("冲突明细应指向对应的既有班次")
	}
}

func TestFindConflicts_MalformedCandidate(t *testing.T) {
	staffID := uuid.New()
	existing := []*model.Shift{
		makeShift(staffID, "2026-03-02", "09:00", "17:00", model.StatusScheduled),
	}

	// 时间格式问题由验证层拦截，检测器按前置条件返回空明细
	bad := makeShift(staffID, "2026-03-02", "9am", "17:00", model.StatusScheduled)

	if conflicts := FindConflicts(existing, bad); len(conflicts) != 0 {
		t.Errorf("无法解析的候选应返回空明细，got %d", len(conflicts))
	}
	if ve := bad.Validate(model.DefaultValidationLimits()); ve == nil || !ve.HasErrors() {
		t.Error("格式错误的时间必须在 Shift.Validate 处作为验证失败返回")
	}
}

func TestFilterConflictFree(t *testing.T) {
	staffID := uuid.New()
	existing := []*model.Shift{
		makeShift(staffID, "2026-03-02", "09:00", "13:00", model.StatusScheduled),
	}
	candidates := []*model.Shift{
		makeShift(staffID, "2026-03-02", "12:00", "16:00", model.StatusScheduled), // 与既有班次冲突
		makeShift(staffID, "2026-03-02", "14:00", "18:00", model.StatusScheduled), // 应被接受
		makeShift(staffID, "2026-03-02", "17:00", "21:00", model.StatusScheduled), // 与前一个已接受候选冲突
	}

	accepted, rejected := FilterConflictFree(existing, candidates)
	if len(accepted) != 1 || len(rejected) != 2 {
		t.Errorf("accepted=%d rejected=%d, expected 1/2", len(accepted), len(rejected))
	}
	if len(accepted) == 1 && accepted[0].StartTime != "14:00" {
		t.Errorf("接受的候选应为 14:00 班次，got %s", accepted[0].StartTime)
	}
}
