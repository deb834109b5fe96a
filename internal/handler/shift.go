package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/canban/canban/internal/config"
	"github.com/canban/canban/internal/store"
	"github.com/canban/canban/pkg/errors"
	"github.com/canban/canban/pkg/logger"
	"github.com/canban/canban/pkg/model"
	"github.com/canban/canban/pkg/validator"
	"github.com/google/uuid"
)

// ShiftHandler 班次记录处理器
type ShiftHandler struct {
	store store.ShiftStore
	cfg   config.SchedulingConfig
}

// NewShiftHandler 创建班次记录处理器
func NewShiftHandler(s store.ShiftStore, cfg config.SchedulingConfig) *ShiftHandler {
	return &ShiftHandler{store: s, cfg: cfg}
}

// limits 返回配置的字段验证阈值
func (h *ShiftHandler) limits() model.ValidationLimits {
	return model.ValidationLimits{
		MaxBreakRatio: h.cfg.MaxBreakRatio,
		MaxNotesLen:   h.cfg.MaxNotesLength,
	}
}

// Collection 处理 /api/v1/shifts
func (h *ShiftHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/POST方法"))
	}
}

// Item 处理 /api/v1/shifts/{id} 与 /api/v1/shifts/{id}/status
func (h *ShiftHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/shifts/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	id, err := uuid.Parse(parts[0])
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的班次ID格式"))
		return
	}

	if len(parts) == 2 && parts[1] == "status" {
		if r.Method != http.MethodPatch {
			respondError(w, errors.New(errors.CodeInvalidInput, "仅支持PATCH方法"))
			return
		}
		h.updateStatus(w, r, id)
		return
	}
	if len(parts) != 1 {
		respondError(w, errors.NotFound("路由", r.URL.Path))
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET/DELETE方法"))
	}
}

// ListShiftsResponse 班次列表响应
type ListShiftsResponse struct {
	Success bool           `json:"success"`
	Data    []*model.Shift `json:"data"`
	Count   int            `json:"count"`
}

func (h *ShiftHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.DefaultShiftFilter()
	if v := q.Get("staff_member"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的员工ID格式"))
			return
		}
		filter = filter.WithStaffMember(id)
	}
	if from, to := q.Get("date_from"), q.Get("date_to"); from != "" || to != "" {
		filter = filter.WithDateRange(from, to)
	}
	if v := q.Get("status"); v != "" {
		if !model.ShiftStatus(v).IsValid() {
			respondError(w, errors.InvalidInput("status", "未知状态: "+v))
			return
		}
		filter = filter.WithStatus(v)
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	sortClause, err := store.ParseSort(q.Get("sort"))
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "无效的排序表达式"))
		return
	}

	shifts, err := h.store.List(r.Context(), filter, sortClause)
	if err != nil {
		respondAnyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ListShiftsResponse{
		Success: true,
		Data:    shifts,
		Count:   len(shifts),
	})
}

// ShiftResponse 单班次响应
type ShiftResponse struct {
	Success bool         `json:"success"`
	Data    *model.Shift `json:"data"`
}

func (h *ShiftHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	shift, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondAnyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ShiftResponse{Success: true, Data: shift})
}

func (h *ShiftHandler) create(w http.ResponseWriter, r *http.Request) {
	var shift model.Shift
	if appErr := decodeBody(r, &shift); appErr != nil {
		respondError(w, appErr)
		return
	}

	if ve := shift.Validate(h.limits()); ve != nil && ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return
	}

	// 与该员工当天既有记录做冲突门控
	filter := store.DefaultShiftFilter().WithStaffMember(shift.StaffMember)
	filter.ShiftDate = shift.ShiftDate
	existing, err := h.store.List(r.Context(), filter, "shift_date ASC, start_time ASC")
	if err != nil {
		respondAnyError(w, err)
		return
	}
	if conflicts := validator.FindConflicts(existing, &shift); len(conflicts) > 0 {
		respondError(w, errors.ScheduleConflict(
			shift.StaffMember.String(), shift.ShiftDate, conflicts[0].Message))
		return
	}

	if err := h.store.Create(r.Context(), &shift); err != nil {
		respondAnyError(w, err)
		return
	}

	logger.Info().
		Str("shift_id", shift.ID.String()).
		Str("staff_id", shift.StaffMember.String()).
		Str("date", shift.ShiftDate).
		Msg("班次已创建")

	respondJSON(w, http.StatusCreated, ShiftResponse{Success: true, Data: &shift})
}

// UpdateStatusRequest 状态流转请求
type UpdateStatusRequest struct {
	Status model.ShiftStatus `json:"status"`
	// UpdatedAt 客户端最后读到的更新时间，用于乐观并发控制
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *ShiftHandler) updateStatus(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req UpdateStatusRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		respondError(w, appErr)
		return
	}

	if !req.Status.IsValid() {
		respondError(w, errors.InvalidInput("status", "未知状态: "+string(req.Status)))
		return
	}
	if req.UpdatedAt.IsZero() {
		respondError(w, errors.InvalidInput("updated_at", "必须携带最后读到的更新时间"))
		return
	}

	shift, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondAnyError(w, err)
		return
	}

	if !model.IsValidTransition(shift.Status, req.Status) {
		respondError(w, errors.InvalidTransition(string(shift.Status), string(req.Status)))
		return
	}

	previous := shift.Status
	shift.Status = req.Status
	if err := h.store.UpdateGuarded(r.Context(), shift, req.UpdatedAt); err != nil {
		respondAnyError(w, err)
		return
	}

	logger.Info().
		Str("shift_id", id.String()).
		Str("from", string(previous)).
		Str("to", string(req.Status)).
		Msg("班次状态已流转")

	respondJSON(w, http.StatusOK, ShiftResponse{Success: true, Data: shift})
}

func (h *ShiftHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.store.Delete(r.Context(), id); err != nil {
		respondAnyError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id.String(),
	})
}
