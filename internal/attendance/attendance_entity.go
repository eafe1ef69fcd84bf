package attendance

import "time"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Record is one shift: a clock-in, optionally closed by a clock-out.
// Dates and times are stored as text (YYYY-MM-DD / HH:MM:SS), matching the
// on-disk compatibility contract.
type Record struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	EmpNo    string  `gorm:"column:emp_no"`
	EmpName  *string `gorm:"column:emp_name"`
	WorkDate string  `gorm:"column:work_date"`
	InTime   string  `gorm:"column:in_time"`
	OutDate  *string `gorm:"column:out_date"`
	OutTime  *string `gorm:"column:out_time"`
	Memo     *string `gorm:"column:memo"`
}

func (Record) TableName() string {
	return "attendance"
}

// Open reports whether the shift has no clock-out yet. Legacy rows may
// carry an empty string instead of NULL, both count as open.
func (r Record) Open() bool {
	return r.OutTime == nil || *r.OutTime == ""
}

// WorkedMinutes returns the duration between (work_date, in_time) and
// (out_date ?? work_date, out_time) in whole minutes. Defined only when
// both timestamps are present.
func (r Record) WorkedMinutes() (int64, bool) {
	if r.Open() || r.InTime == "" || r.WorkDate == "" {
		return 0, false
	}
	start, err := time.Parse(dateLayout+" "+timeLayout, r.WorkDate+" "+r.InTime)
	if err != nil {
		return 0, false
	}
	outDate := r.WorkDate
	if r.OutDate != nil && *r.OutDate != "" {
		outDate = *r.OutDate
	}
	end, err := time.Parse(dateLayout+" "+timeLayout, outDate+" "+*r.OutTime)
	if err != nil {
		return 0, false
	}
	return int64(end.Sub(start) / time.Minute), true
}
