// Package timeutil 提供班次时间计算工具
//
// 所有跨天班次（结束时间早于或等于开始时间）的归一化都集中在这里，
// 时长、重叠、覆盖率等下游计算必须使用归一化后的分钟区间，
// 不允许直接比较 HH:MM 字符串。
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay 一天的分钟数
const MinutesPerDay = 24 * 60

// ParseClock 解析 HH:MM 时间字符串，返回当日分钟数 [0, 1440)
func ParseClock(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("时间格式无效: %q (期望 HH:MM)", clock)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("时间格式无效: %q (小时超出范围)", clock)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("时间格式无效: %q (分钟超出范围)", clock)
	}

	return hour*60 + minute, nil
}

// MinutesOfDay 返回时刻的当日分钟数 [0, 1440)
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatClock 将当日分钟数格式化为 HH:MM
func FormatClock(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ShiftSpan 将班次起止时间归一化为分钟区间
//
// 结束时间早于或等于开始时间视为跨天班次，结束点加 1440，
// 因此返回的 end 可能超过 1440（例如 22:00–06:00 -> 1320, 1800）。
func ShiftSpan(start, end string) (int, int, error) {
	startMin, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}

	endMin, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}

	if endMin <= startMin {
		endMin += MinutesPerDay
	}

	return startMin, endMin, nil
}

// SpanMinutes 返回归一化区间的总分钟数
func SpanMinutes(start, end string) (int, error) {
	startMin, endMin, err := ShiftSpan(start, end)
	if err != nil {
		return 0, err
	}
	return endMin - startMin, nil
}

// Overlaps 检查两个归一化区间是否重叠（半开区间）
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// AddDays 在 YYYY-MM-DD 日期上加减天数
func AddDays(date string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("日期格式无效: %q (期望 YYYY-MM-DD)", date)
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}

// IsValidDate 检查日期字符串是否为有效的 YYYY-MM-DD
func IsValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
