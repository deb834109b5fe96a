package handler

import (
	"net/http"
	"time"

	"github.com/canban/canban/internal/config"
	"github.com/canban/canban/internal/metrics"
	"github.com/canban/canban/pkg/errors"
	"github.com/canban/canban/pkg/logger"
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/scheduler/generator"
	"github.com/canban/canban/pkg/scheduler/solver"
	"github.com/canban/canban/pkg/timeutil"
	"github.com/canban/canban/pkg/validator"
	"github.com/google/uuid"
)

// ScheduleHandler 排班处理器
type ScheduleHandler struct {
	cfg    config.SchedulingConfig
	logger *logger.RosterLogger
}

// NewScheduleHandler 创建排班处理器
func NewScheduleHandler(cfg config.SchedulingConfig) *ScheduleHandler {
	return &ScheduleHandler{
		cfg:    cfg,
		logger: logger.NewRosterLogger(),
	}
}

// CheckConflictRequest 冲突检测请求
type CheckConflictRequest struct {
	Candidate *model.Shift   `json:"candidate"`
	Existing  []*model.Shift `json:"existing"`
}

// CheckConflictResponse 冲突检测响应
type CheckConflictResponse struct {
	Success      bool                 `json:"success"`
	HasConflict  bool                 `json:"has_conflict"`
	Conflicts    []validator.Conflict `json:"conflicts,omitempty"`
	NextStatuses []model.ShiftStatus  `json:"next_statuses,omitempty"`
}

// CheckConflict 检测候选班次与既有班次的时间重叠
func (h *ScheduleHandler) CheckConflict(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req CheckConflictRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.Candidate == nil {
		respondError(w, errors.InvalidInput("candidate", "候选班次不能为空"))
		return
	}

	limits := model.ValidationLimits{
		MaxBreakRatio: h.cfg.MaxBreakRatio,
		MaxNotesLen:   h.cfg.MaxNotesLength,
	}
	if ve := req.Candidate.Validate(limits); ve != nil && ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return
	}

	conflicts := validator.FindConflicts(req.Existing, req.Candidate)
	metrics.RecordConflictCheck(len(conflicts) > 0)

	if len(conflicts) > 0 {
		h.logger.ConflictRejected(
			req.Candidate.StaffMember.String(),
			req.Candidate.ShiftDate,
			conflicts[0].Message,
		)
	}

	respondJSON(w, http.StatusOK, CheckConflictResponse{
		Success:      true,
		HasConflict:  len(conflicts) > 0,
		Conflicts:    conflicts,
		NextStatuses: model.NextStatuses(req.Candidate.Status),
	})
}

// GenerateWeekRequest 周排班生成请求
type GenerateWeekRequest struct {
	StaffID   string                 `json:"staff_id"`
	WeekStart string                 `json:"week_start"` // YYYY-MM-DD，周一
	Template  model.ScheduleTemplate `json:"template"`
	Existing  []*model.Shift         `json:"existing,omitempty"` // 员工当周既有班次
}

// GenerateWeekResponse 周排班生成响应
type GenerateWeekResponse struct {
	Success  bool           `json:"success"`
	Drafts   []*model.Shift `json:"drafts"`
	Rejected []*model.Shift `json:"rejected,omitempty"` // 与既有班次冲突被拒的草稿
	Message  string         `json:"message,omitempty"`
}

// GenerateWeek 将周模板展开为班次草稿，并对既有班次做冲突门控
func (h *ScheduleHandler) GenerateWeek(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req GenerateWeekRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	ve := &errors.ValidationErrors{}
	if req.StaffID == "" {
		ve.Add("staff_id", "员工ID不能为空")
	}
	if !timeutil.IsValidDate(req.WeekStart) {
		ve.Add("week_start", "日期格式无效，应为YYYY-MM-DD")
	}
	if len(req.Template) == 0 {
		ve.Add("template", "周模板不能为空")
	}
	if ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return
	}

	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的员工ID格式"))
		return
	}

	opts := generator.Options{DefaultBreakMinutes: h.cfg.DefaultBreakMinutes}
	drafts, err := generator.GenerateWeeklyShifts(req.Template, req.WeekStart, staffID, opts)
	if err != nil {
		metrics.RecordWeekGeneration(false, 0)
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "周排班生成失败"))
		return
	}

	accepted, rejected := validator.FilterConflictFree(req.Existing, drafts)
	metrics.RecordWeekGeneration(true, len(accepted))
	h.logger.WeekGenerated(req.StaffID, req.WeekStart, len(accepted))

	resp := GenerateWeekResponse{
		Success:  true,
		Drafts:   accepted,
		Rejected: rejected,
	}
	if len(rejected) > 0 {
		resp.Message = "部分草稿与既有班次冲突，已剔除"
	}

	respondJSON(w, http.StatusOK, resp)
}

// OptimizeRequest 排班优化请求
type OptimizeRequest struct {
	Requirements *model.StaffingRequirement `json:"requirements"`
	Staff        []*model.StaffMember       `json:"staff"`
}

// OptimizeResponse 排班优化响应
type OptimizeResponse struct {
	Success bool           `json:"success"`
	Data    *solver.Result `json:"data"`
	Elapsed string         `json:"elapsed"`
}

// Optimize 贪心指派可用员工以满足人力需求
func (h *ScheduleHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req OptimizeRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.Requirements == nil {
		respondError(w, errors.InvalidInput("requirements", "人力需求不能为空"))
		return
	}
	for i, slot := range req.Requirements.Slots {
		if !slot.Position.IsValid() {
			metrics.RecordOptimizerRun(false, 0, 0, 0)
			respondError(w, errors.InvalidInput("requirements", "岗位无效: "+string(req.Requirements.Slots[i].Position)))
			return
		}
	}

	opt := solver.NewGreedyOptimizer()
	result := opt.Optimize(req.Requirements, req.Staff)

	metrics.RecordOptimizerRun(true, result.CoveragePercentage, result.TotalCost, result.Duration)

	respondJSON(w, http.StatusOK, OptimizeResponse{
		Success: true,
		Data:    result,
		Elapsed: result.Duration.String(),
	})
}

// EvaluateSwapRequest 换班评估请求
type EvaluateSwapRequest struct {
	Swap         *validator.SwapRequest `json:"swap"`
	SourceShifts []*model.Shift         `json:"source_shifts"` // 源员工当期班次
	TargetShifts []*model.Shift         `json:"target_shifts"` // 目标员工当期班次
}

// EvaluateSwapResponse 换班评估响应
type EvaluateSwapResponse struct {
	Success bool                      `json:"success"`
	Data    *validator.SwapEvaluation `json:"data"`
}

// EvaluateSwap 评估两名员工交换班次的可行性
func (h *ScheduleHandler) EvaluateSwap(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req EvaluateSwapRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if req.Swap == nil {
		respondError(w, errors.InvalidInput("swap", "换班请求不能为空"))
		return
	}

	start := time.Now()
	eval := validator.EvaluateSwap(req.Swap, req.SourceShifts, req.TargetShifts)

	logger.Info().
		Bool("feasible", eval.Feasible).
		Int("issues", len(eval.Issues)).
		Dur("duration", time.Since(start)).
		Msg("换班评估完成")

	respondJSON(w, http.StatusOK, EvaluateSwapResponse{
		Success: true,
		Data:    eval,
	})
}
