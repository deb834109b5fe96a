package validator

import (
	"testing"

	"github.com/canban/canban/pkg/model"
)

func makeStaff(name string) *model.StaffMember {
	return &model.StaffMember{
		BaseModel: model.NewBaseModel(),
		Name:      name,
		Position:  model.PositionServer,
		Status:    "active",
	}
}

func TestEvaluateSwap(t *testing.T) {
	alice := makeStaff("小张")
	bob := makeStaff("小李")

	aliceShift := makeShift(alice.ID, "2026-03-02", "09:00", "17:00", model.StatusScheduled)
	bobShift := makeShift(bob.ID, "2026-03-03", "17:00", "23:00", model.StatusScheduled)

	t.Run("无其他班次时可行", func(t *testing.T) {
		eval := EvaluateSwap(&SwapRequest{
			SourceShift: aliceShift,
			TargetShift: bobShift,
			SourceStaff: alice,
			TargetStaff: bob,
		}, []*model.Shift{aliceShift}, []*model.Shift{bobShift})

		if !eval.Feasible {
			t.Errorf("换班应可行，issues=%v", eval.Issues)
		}
	})

	t.Run("目标员工既有班次冲突", func(t *testing.T) {
		// 小李在 03-02 已有与小张班次重叠的班次
		bobOther := makeShift(bob.ID, "2026-03-02", "12:00", "20:00", model.StatusScheduled)
		eval := EvaluateSwap(&SwapRequest{
			SourceShift: aliceShift,
			TargetShift: bobShift,
			SourceStaff: alice,
			TargetStaff: bob,
		}, []*model.Shift{aliceShift}, []*model.Shift{bobShift, bobOther})

		if eval.Feasible {
			t.Error("目标员工存在冲突时换班不可行")
		}
		if len(eval.Issues) == 0 || eval.Issues[0].Type != "target_conflict" {
			t.Errorf("应报告 target_conflict，got %v", eval.Issues)
		}
	})

	t.Run("离职员工不能换班", func(t *testing.T) {
		leaver := makeStaff("小王")
		leaver.Status = "inactive"
		eval := EvaluateSwap(&SwapRequest{
			SourceShift: aliceShift,
			TargetShift: bobShift,
			SourceStaff: alice,
			TargetStaff: leaver,
		}, nil, nil)

		if eval.Feasible {
			t.Error("离职员工不应允许换班")
		}
	})

	t.Run("终态班次不能换班", func(t *testing.T) {
		done := makeShift(alice.ID, "2026-03-01", "09:00", "17:00", model.StatusCompleted)
		eval := EvaluateSwap(&SwapRequest{
			SourceShift: done,
			TargetShift: bobShift,
			SourceStaff: alice,
			TargetStaff: bob,
		}, nil, nil)

		if eval.Feasible {
			t.Error("已完成班次不应允许换班")
		}
	})

	t.Run("请求不完整", func(t *testing.T) {
		eval := EvaluateSwap(&SwapRequest{SourceShift: aliceShift}, nil, nil)
		if eval.Feasible {
			t.Error("不完整的换班请求应不可行")
		}
	})
}

func TestEvaluateSwap_ExcludesSwappedShift(t *testing.T) {
	alice := makeStaff("小张")
	bob := makeStaff("小李")

	// 同一天同一时段互换：换入的班次与被换出的班次本身不应算冲突
	aliceShift := makeShift(alice.ID, "2026-03-02", "09:00", "17:00", model.StatusScheduled)
	bobShift := makeShift(bob.ID, "2026-03-02", "09:00", "17:00", model.StatusScheduled)

	eval := EvaluateSwap(&SwapRequest{
		SourceShift: aliceShift,
		TargetShift: bobShift,
		SourceStaff: alice,
		TargetStaff: bob,
	}, []*model.Shift{aliceShift}, []*model.Shift{bobShift})

	if !eval.Feasible {
		t.Errorf("同时段互换应可行，issues=%v", eval.Issues)
	}
}
