package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name    string
		sort    string
		want    string
		wantErr bool
	}{
		{"空表达式用默认排序", "", "shift_date ASC, start_time ASC", false},
		{"单字段升序", "shift_date", "shift_date ASC", false},
		{"单字段降序", "-created_at", "created_at DESC", false},
		{"多字段混合", "shift_date,-start_time", "shift_date ASC, start_time DESC", false},
		{"带空格", " shift_date , -status ", "shift_date ASC, status DESC", false},
		{"白名单外字段", "notes;DROP TABLE shifts", "", true},
		{"未知字段", "salary", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.sort)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSort(%q) error = %v, wantErr %v", tt.sort, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseSort(%q) = %q, expected %q", tt.sort, got, tt.want)
			}
		})
	}
}

func TestShiftFilter_Builders(t *testing.T) {
	staffID := uuid.New()

	f := DefaultShiftFilter().
		WithStaffMember(staffID).
		WithDateRange("2026-03-02", "2026-03-08").
		WithStatus("scheduled")

	if f.StaffMember == nil || *f.StaffMember != staffID {
		t.Error("员工过滤未设置")
	}
	if f.DateFrom != "2026-03-02" || f.DateTo != "2026-03-08" {
		t.Errorf("日期范围 = %s..%s", f.DateFrom, f.DateTo)
	}
	if f.Status != "scheduled" {
		t.Errorf("状态 = %s", f.Status)
	}
	if f.Limit != 50 {
		t.Errorf("默认 Limit = %d, expected 50", f.Limit)
	}
}
