package util

import "time"

// Now 统一时钟入口，测试里可替换
var Now = time.Now

// StartOfDay 返回 t 所在时区当天零点，按日历日分桶用
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
