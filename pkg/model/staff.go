// Package model 定义餐厅排班的核心数据模型
package model

// StaffMember 员工
type StaffMember struct {
	BaseModel
	Name       string   `json:"name" db:"name"`
	Position   Position `json:"position" db:"position"`
	HourlyRate float64  `json:"hourly_rate" db:"hourly_rate"`
	Status     string   `json:"status" db:"status"` // active/inactive/leave
	Phone      string   `json:"phone,omitempty" db:"phone"`
	Email      string   `json:"email,omitempty" db:"email"`
	HireDate   string   `json:"hire_date,omitempty" db:"hire_date"`
}

// IsActive 检查员工是否在职
func (m *StaffMember) IsActive() bool {
	return m.Status == "active"
}

// SlotRequirement 某小时段某岗位的最低人数要求
type SlotRequirement struct {
	HourSlot string   `json:"hour_slot"` // HH:00
	Position Position `json:"position"`
	MinCount int      `json:"min_count"`
}

// StaffingRequirement 人力需求（调用方传入，不落库）
type StaffingRequirement struct {
	Slots []SlotRequirement `json:"slots"`
}

// TotalRequired 返回需求总人次
func (r *StaffingRequirement) TotalRequired() int {
	total := 0
	for _, s := range r.Slots {
		total += s.MinCount
	}
	return total
}

// TemplateEntry 周模板中的单个班次定义
type TemplateEntry struct {
	Position  Position `json:"position"`
	StartTime string   `json:"start_time"` // HH:MM
	EndTime   string   `json:"end_time"`   // HH:MM
}

// ScheduleTemplate 周排班模板：星期键（monday…sunday）-> 班次列表
type ScheduleTemplate map[string][]TemplateEntry

