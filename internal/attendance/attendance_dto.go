package attendance

type ClockInRequest struct {
	EmpNo string  `json:"emp_no" validate:"required"`
	Date  string  `json:"date"` // YYYY-MM-DD, empty means today
	Time  string  `json:"time"` // HH:MM or HH:MM:SS, empty means now
	Memo  *string `json:"memo"`
}

type ClockOutRequest struct {
	EmpNo string  `json:"emp_no" validate:"required"`
	Date  string  `json:"date"`
	Time  string  `json:"time"`
	Memo  *string `json:"memo"`
}

// ClockOutByKeyRequest closes one explicitly addressed record, used for
// manual correction when the automatic selection picked nothing or the
// wrong shift.
type ClockOutByKeyRequest struct {
	EmpNo   string  `json:"emp_no" validate:"required"`
	Date    string  `json:"date" validate:"required"`
	InTime  string  `json:"in_time" validate:"required"`
	OutDate string  `json:"out_date"` // empty means derive from the overnight rule
	OutTime string  `json:"out_time" validate:"required"`
	Memo    *string `json:"memo"`
}

type RecordResponse struct {
	ID            int64   `json:"id"`
	EmpNo         string  `json:"emp_no"`
	EmpName       *string `json:"emp_name,omitempty"`
	WorkDate      string  `json:"work_date"`
	InTime        string  `json:"in_time"`
	OutDate       *string `json:"out_date,omitempty"`
	OutTime       *string `json:"out_time,omitempty"`
	Memo          *string `json:"memo,omitempty"`
	WorkedMinutes *int64  `json:"worked_minutes,omitempty"`
}

func mapToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		ID:       r.ID,
		EmpNo:    r.EmpNo,
		EmpName:  r.EmpName,
		WorkDate: r.WorkDate,
		InTime:   r.InTime,
		OutDate:  r.OutDate,
		OutTime:  r.OutTime,
		Memo:     r.Memo,
	}
	if mins, ok := r.WorkedMinutes(); ok {
		resp.WorkedMinutes = &mins
	}
	return resp
}
