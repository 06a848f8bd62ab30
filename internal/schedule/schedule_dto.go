package schedule

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Weekday: 0 = Minggu ... 6 = Sabtu. Saat decode JSON juga menerima nama
// hari (english atau indonesia), dan selalu di-encode sebagai angka.
type Weekday int

var weekdayNames = map[string]Weekday{
	"sunday": 0, "monday": 1, "tuesday": 2, "wednesday": 3,
	"thursday": 4, "friday": 5, "saturday": 6,
	"minggu": 0, "senin": 1, "selasa": 2, "rabu": 3,
	"kamis": 4, "jumat": 5, "sabtu": 6,
}

func (d *Weekday) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*d = Weekday(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("day must be a number or a day name")
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		*d = Weekday(n)
		return nil
	}
	w, ok := weekdayNames[s]
	if !ok {
		return fmt.Errorf("unknown day %q", s)
	}
	*d = w
	return nil
}

type WorkingHour struct {
	Day          Weekday `json:"day" binding:"min=0,max=6"`
	IsWorkingDay bool    `json:"is_working_day"`
	StartTime    string  `json:"start_time" binding:"omitempty,max=5"`
	EndTime      string  `json:"end_time" binding:"omitempty,max=5"`
}

type UpdateWorkingHoursRequest struct {
	WorkingHours []WorkingHour `json:"working_hours" binding:"required,len=7,dive"`
}

type HolidayQuery struct {
	Year int `form:"year" json:"year" binding:"omitempty,min=1970,max=2100"`
}

type CreateHolidayRequest struct {
	Name        string `json:"name" binding:"required,max=150"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"omitempty,max=500"`
}
