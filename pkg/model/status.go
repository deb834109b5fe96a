// Package model 定义餐厅排班的核心数据模型
package model

// ShiftStatus 班次生命周期状态
type ShiftStatus string

const (
	StatusScheduled ShiftStatus = "scheduled" // 已排班
	StatusConfirmed ShiftStatus = "confirmed" // 已确认
	StatusCompleted ShiftStatus = "completed" // 已完成
	StatusCancelled ShiftStatus = "cancelled" // 已取消
	StatusNoShow    ShiftStatus = "no_show"   // 未出勤
)

// AllStatuses 所有合法状态
var AllStatuses = []ShiftStatus{
	StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow,
}

// allowedTransitions 状态转换表
//
// completed 和 no_show 为终态，没有出边；
// cancelled -> scheduled 表示重新排班。
var allowedTransitions = map[ShiftStatus][]ShiftStatus{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
	StatusCancelled: {StatusScheduled},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// IsValid 检查状态是否合法
func (s ShiftStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal 检查是否为终态
func (s ShiftStatus) IsTerminal() bool {
	next, ok := allowedTransitions[s]
	return ok && len(next) == 0
}

// IsValidTransition 检查状态转换是否允许
//
// 纯查表，不产生任何副作用；自转换和终态出边一律拒绝。
func IsValidTransition(current, next ShiftStatus) bool {
	for _, allowed := range allowedTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NextStatuses 返回某状态允许的后继状态
func NextStatuses(current ShiftStatus) []ShiftStatus {
	next := allowedTransitions[current]
	out := make([]ShiftStatus, len(next))
	copy(out, next)
	return out
}
