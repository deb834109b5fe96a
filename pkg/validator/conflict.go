// Package validator 提供排班冲突检测功能
package validator

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/timeutil"
)

// Conflict 冲突信息
type Conflict struct {
	StaffID       uuid.UUID `json:"staff_id"`
	Date          string    `json:"date"`
	Message       string    `json:"message"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	ExistingID    uuid.UUID `json:"existing_id"`
	ExistingStart string    `json:"existing_start"`
	ExistingEnd   string    `json:"existing_end"`
}

// HasConflict 检查候选班次是否与既有班次时间重叠
//
// 只比较同一日期且未取消的既有班次；起止时间经归一化后
// 按半开区间判定重叠（candStart < exEnd && candEnd > exStart），
// 因此首尾相接的两个班次不算冲突，而跨天夜班会正确地
// 与当天傍晚开始的班次冲突。检测是对称的，不修改任何输入。
//
// 前置条件：候选班次必须先通过 Shift.Validate，时间格式问题
// 在验证层作为验证失败返回；本函数对无法解析的候选回答
// 无冲突，不承担格式校验职责。
func HasConflict(existing []*model.Shift, candidate *model.Shift) bool {
	return len(FindConflicts(existing, candidate)) > 0
}

// FindConflicts 返回候选班次与既有班次的所有冲突明细
//
// 前置条件同 HasConflict：时间格式无效的候选返回空明细，
// 调用方须先经 Shift.Validate 拦截。
func FindConflicts(existing []*model.Shift, candidate *model.Shift) []Conflict {
	candStart, candEnd, err := candidate.Span()
	if err != nil {
		return nil
	}

	var conflicts []Conflict
	for _, shift := range existing {
		if shift.ShiftDate != candidate.ShiftDate {
			continue
		}
		if shift.Status == model.StatusCancelled {
			continue
		}
		if shift.ID != uuid.Nil && shift.ID == candidate.ID {
			continue
		}

		exStart, exEnd, err := shift.Span()
		if err != nil {
			continue
		}

		if timeutil.Overlaps(candStart, candEnd, exStart, exEnd) {
			conflicts = append(conflicts, Conflict{
				StaffID:     candidate.StaffMember,
				Date:        candidate.ShiftDate,
				CandidateID: candidate.ID,
				ExistingID:  shift.ID,
				Message: fmt.Sprintf("与 %s-%s 的班次时间重叠",
					shift.StartTime, shift.EndTime),
				ExistingStart: shift.StartTime,
				ExistingEnd:   shift.EndTime,
			})
		}
	}

	return conflicts
}

// FilterConflictFree 从候选列表中筛出无冲突的班次
//
// 逐个检查并把已接受的候选并入比较集合，
// 因此同一批候选之间的互相冲突也会被拦截。
func FilterConflictFree(existing []*model.Shift, candidates []*model.Shift) (accepted, rejected []*model.Shift) {
	pool := make([]*model.Shift, len(existing))
	copy(pool, existing)

	for _, cand := range candidates {
		if HasConflict(pool, cand) {
			rejected = append(rejected, cand)
			continue
		}
		accepted = append(accepted, cand)
		pool = append(pool, cand)
	}

	return accepted, rejected
}
