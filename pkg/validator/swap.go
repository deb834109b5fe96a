// Package validator 提供排班冲突检测功能
package validator

import (
	"github.com/canban/canban/pkg/model"
)

// SwapRequest 换班请求：两名员工交换各自的一个班次
type SwapRequest struct {
	SourceShift *model.Shift       `json:"source_shift"`
	TargetShift *model.Shift       `json:"target_shift"`
	SourceStaff *model.StaffMember `json:"source_staff"`
	TargetStaff *model.StaffMember `json:"target_staff"`
}

// SwapIssue 换班问题
type SwapIssue struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SwapEvaluation 换班评估结果
type SwapEvaluation struct {
	Feasible bool        `json:"feasible"`
	Issues   []SwapIssue `json:"issues,omitempty"`
}

// EvaluateSwap 评估换班可行性
//
// 交换后源班次归目标员工、目标班次归源员工；
// 只有双方换入的班次都不与各自剩余班次冲突时才可行。
// 纯决策函数，执行与持久化由调用方负责。
func EvaluateSwap(req *SwapRequest, sourceShifts, targetShifts []*model.Shift) *SwapEvaluation {
	eval := &SwapEvaluation{Feasible: true}

	if req.SourceShift == nil || req.TargetShift == nil || req.SourceStaff == nil || req.TargetStaff == nil {
		eval.Feasible = false
		eval.Issues = append(eval.Issues, SwapIssue{
			Type:    "invalid_request",
			Message: "换班请求不完整",
		})
		return eval
	}

	if !req.SourceStaff.IsActive() || !req.TargetStaff.IsActive() {
		eval.Feasible = false
		eval.Issues = append(eval.Issues, SwapIssue{
			Type:    "staff_inactive",
			Message: "换班双方必须均在职",
		})
		return eval
	}

	if req.SourceShift.Status.IsTerminal() || req.TargetShift.Status.IsTerminal() {
		eval.Feasible = false
		eval.Issues = append(eval.Issues, SwapIssue{
			Type:    "shift_terminal",
			Message: "已完成或未出勤的班次不能换班",
		})
		return eval
	}

	// 换入目标员工名下的源班次
	incomingTarget := *req.SourceShift
	incomingTarget.StaffMember = req.TargetStaff.ID
	if HasConflict(without(targetShifts, req.TargetShift), &incomingTarget) {
		eval.Feasible = false
		eval.Issues = append(eval.Issues, SwapIssue{
			Type:    "target_conflict",
			Message: "源班次与目标员工的既有班次冲突",
		})
	}

	// 换入源员工名下的目标班次
	incomingSource := *req.TargetShift
	incomingSource.StaffMember = req.SourceStaff.ID
	if HasConflict(without(sourceShifts, req.SourceShift), &incomingSource) {
		eval.Feasible = false
		eval.Issues = append(eval.Issues, SwapIssue{
			Type:    "source_conflict",
			Message: "目标班次与源员工的既有班次冲突",
		})
	}

	return eval
}

// without 返回剔除指定班次后的列表
func without(shifts []*model.Shift, exclude *model.Shift) []*model.Shift {
	out := make([]*model.Shift, 0, len(shifts))
	for _, s := range shifts {
		if s.ID == exclude.ID {
			continue
		}
		out = append(out, s)
	}
	return out
}
