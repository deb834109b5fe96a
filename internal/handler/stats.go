package handler

import (
	"net/http"
	"sort"

	"github.com/canban/canban/internal/config"
	"github.com/canban/canban/pkg/errors"
	"github.com/canban/canban/pkg/logger"
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/payroll"
	"github.com/canban/canban/pkg/stats"
	"github.com/google/uuid"
)

// StatsHandler 统计分析处理器
type StatsHandler struct {
	cfg config.SchedulingConfig
}

// NewStatsHandler 创建统计分析处理器
func NewStatsHandler(cfg config.SchedulingConfig) *StatsHandler {
	return &StatsHandler{cfg: cfg}
}

// window 返回配置的统计窗口
func (h *StatsHandler) window() stats.SlotWindow {
	return stats.SlotWindow{
		StartHour: h.cfg.SlotWindowStartHour,
		EndHour:   h.cfg.SlotWindowEndHour,
	}
}

// StaffingRequest 在班人数统计请求
type StaffingRequest struct {
	Shifts []*model.Shift `json:"shifts"`
}

// StaffingResponse 在班人数统计响应
type StaffingResponse struct {
	Success bool                 `json:"success"`
	Data    stats.StaffingLevels `json:"data"`
}

// Staffing 按小时段统计各岗位在班人数
func (h *StatsHandler) Staffing(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req StaffingRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	levels := stats.ComputeStaffingLevels(req.Shifts, h.window())

	logger.Info().
		Int("shifts", len(req.Shifts)).
		Int("slots", len(levels)).
		Msg("在班人数统计完成")

	respondJSON(w, http.StatusOK, StaffingResponse{Success: true, Data: levels})
}

// CoverageGapsRequest 覆盖缺口分析请求
type CoverageGapsRequest struct {
	Shifts       []*model.Shift             `json:"shifts"`
	Requirements *model.StaffingRequirement `json:"requirements"`
}

// CoverageGapsResponse 覆盖缺口分析响应
type CoverageGapsResponse struct {
	Success       bool                `json:"success"`
	Gaps          []stats.CoverageGap `json:"gaps"`
	TotalShortage int                 `json:"total_shortage"`
}

// CoverageGaps 比较人力需求与实际在班人数，报告缺口
func (h *StatsHandler) CoverageGaps(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req CoverageGapsRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.Requirements == nil {
		respondError(w, errors.InvalidInput("requirements", "人力需求不能为空"))
		return
	}

	levels := stats.ComputeStaffingLevels(req.Shifts, h.window())
	gaps := stats.FindGaps(req.Requirements, levels)

	totalShortage := 0
	for _, g := range gaps {
		totalShortage += g.Shortage
	}

	respondJSON(w, http.StatusOK, CoverageGapsResponse{
		Success:       true,
		Gaps:          gaps,
		TotalShortage: totalShortage,
	})
}

// PayrollRequest 工资周期汇总请求
type PayrollRequest struct {
	Shifts      []*model.Shift             `json:"shifts"`
	HourlyRates map[model.Position]float64 `json:"hourly_rates"`
	// StandardWeeklyHours 覆盖配置的加班阈值（可选，0表示用配置值）
	StandardWeeklyHours float64 `json:"standard_weekly_hours,omitempty"`
}

// StaffPayroll 单个员工的周工时汇总
type StaffPayroll struct {
	StaffID       string  `json:"staff_id"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	ShiftCount    int     `json:"shift_count"`
}

// PayrollResponse 工资周期汇总响应
type PayrollResponse struct {
	Success       bool                   `json:"success"`
	ByStaff       []StaffPayroll         `json:"by_staff"`
	Cost          *payroll.CostBreakdown `json:"cost"`
	TotalOvertime float64                `json:"total_overtime"`
}

// PayrollSummary 汇总一个工资周期的工时、加班与人力成本
//
// 只统计已完成的班次；工时按归一化时长扣除休息计算，
// 加班为周工时超出标准阈值的部分。
func (h *StatsHandler) PayrollSummary(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req PayrollRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	standard := req.StandardWeeklyHours
	if standard <= 0 {
		standard = h.cfg.StandardWeeklyHours
	}

	// 按员工分组，只保留已完成班次
	completed := make([]*model.Shift, 0, len(req.Shifts))
	byStaff := make(map[uuid.UUID][]*model.Shift)
	for _, s := range req.Shifts {
		if s.Status != model.StatusCompleted {
			continue
		}
		completed = append(completed, s)
		byStaff[s.StaffMember] = append(byStaff[s.StaffMember], s)
	}

	summaries := make([]StaffPayroll, 0, len(byStaff))
	totalOvertime := 0.0
	for staffID, shifts := range byStaff {
		hours := payroll.WeeklyHours(shifts)
		overtime := payroll.OvertimeHours(hours, standard)
		totalOvertime += overtime
		summaries = append(summaries, StaffPayroll{
			StaffID:       staffID.String(),
			TotalHours:    hours,
			OvertimeHours: overtime,
			ShiftCount:    len(shifts),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].StaffID < summaries[j].StaffID
	})

	cost := payroll.LaborCost(completed, req.HourlyRates)

	respondJSON(w, http.StatusOK, PayrollResponse{
		Success:       true,
		ByStaff:       summaries,
		Cost:          cost,
		TotalOvertime: totalOvertime,
	})
}
