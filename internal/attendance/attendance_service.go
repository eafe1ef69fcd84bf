package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "github.com/xkxksk1234/Attendance-Manager/internal/attendance/errors"
	"github.com/xkxksk1234/Attendance-Manager/internal/employee"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/contextutil"
)

type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error)
	ClockOutByKey(ctx context.Context, req ClockOutByKeyRequest) (int64, error)
	TodayRecords(ctx context.Context) ([]RecordResponse, error)
	RecordsAt(ctx context.Context, date string) ([]RecordResponse, error)
	RecordsInMonth(ctx context.Context, yearMonth string) ([]RecordResponse, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	loc       *time.Location
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewService builds the business-rules layer. loc is the store's time
// zone, used when the caller omits date or time.
func NewService(repo Repository, employees employee.Repository, loc *time.Location, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if loc == nil {
		loc = time.Local
	}
	return &service{
		repo:      repo,
		employees: employees,
		loc:       loc,
		validate:  validator.New(),
		logger:    l,
	}
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (RecordResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return RecordResponse{}, apperror.MapValidationError(err)
	}

	date, inTime, err := s.resolveDateTime(req.Date, req.Time)
	if err != nil {
		return RecordResponse{}, err
	}

	rec := Record{
		EmpNo:    req.EmpNo,
		EmpName:  s.lookupName(ctx, req.EmpNo),
		WorkDate: date,
		InTime:   inTime,
		Memo:     req.Memo,
	}
	id, err := s.repo.InsertOpen(ctx, &rec)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return RecordResponse{}, err
		}
		return RecordResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "record clock-in")
	}

	s.logger.Info("clocked in",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("emp_no", req.EmpNo),
		zap.String("work_date", date),
		zap.Int64("id", id))
	return mapToResponse(rec), nil
}

// ClockOut closes the employee's open shift on the given date: among that
// day's open records, the one with the latest in_time (ties broken by
// highest id). A shift opened on an earlier day and never closed is out of
// reach here on purpose; ClockOutByKey addresses those.
func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (RecordResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return RecordResponse{}, apperror.MapValidationError(err)
	}

	date, outTime, err := s.resolveDateTime(req.Date, req.Time)
	if err != nil {
		return RecordResponse{}, err
	}

	list, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return RecordResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "look up open shifts")
	}

	var open *Record
	for i := range list {
		r := &list[i]
		if r.EmpNo != req.EmpNo || !r.Open() {
			continue
		}
		if open == nil || laterShift(r, open) {
			open = r
		}
	}
	if open == nil {
		return RecordResponse{}, attendanceerrors.ErrNoOpenShift
	}

	outDate := computeOutDate(open.WorkDate, open.InTime, outTime)
	rows, err := s.repo.CloseByID(ctx, open.ID, outDate, outTime, req.Memo)
	if err != nil {
		return RecordResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "record clock-out")
	}
	if rows == 0 {
		return RecordResponse{}, attendanceerrors.ErrNoOpenShift
	}

	s.logger.Info("clocked out",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("emp_no", req.EmpNo),
		zap.Int64("id", open.ID),
		zap.String("out_date", outDate))

	open.OutDate = &outDate
	open.OutTime = &outTime
	if req.Memo != nil {
		open.Memo = req.Memo
	}
	return mapToResponse(*open), nil
}

// ClockOutByKey closes one explicitly addressed record. An empty OutDate
// is derived from the overnight rule.
func (s *service) ClockOutByKey(ctx context.Context, req ClockOutByKeyRequest) (int64, error) {
	if err := s.validate.Struct(req); err != nil {
		return 0, apperror.MapValidationError(err)
	}

	date, err := normalizeDate(req.Date)
	if err != nil {
		return 0, err
	}
	inTime, err := normalizeTime(req.InTime)
	if err != nil {
		return 0, err
	}
	outTime, err := normalizeTime(req.OutTime)
	if err != nil {
		return 0, err
	}
	outDate := req.OutDate
	if outDate == "" {
		outDate = computeOutDate(date, inTime, outTime)
	} else if outDate, err = normalizeDate(outDate); err != nil {
		return 0, err
	}

	rows, err := s.repo.CloseByKey(ctx, req.EmpNo, date, inTime, outDate, outTime, req.Memo)
	if err != nil {
		return 0, apperror.Wrap(err, apperror.CodeInternalError, "record clock-out")
	}
	return rows, nil
}

func (s *service) TodayRecords(ctx context.Context) ([]RecordResponse, error) {
	return s.recordsAt(ctx, time.Now().In(s.loc).Format(dateLayout))
}

func (s *service) RecordsAt(ctx context.Context, date string) ([]RecordResponse, error) {
	d, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	return s.recordsAt(ctx, d)
}

func (s *service) RecordsInMonth(ctx context.Context, yearMonth string) ([]RecordResponse, error) {
	ym, err := normalizeMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	list, err := s.repo.FindByMonth(ctx, ym)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "list month records")
	}
	return mapAll(list), nil
}

func (s *service) recordsAt(ctx context.Context, date string) ([]RecordResponse, error) {
	list, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "list day records")
	}
	return mapAll(list), nil
}

// resolveDateTime substitutes "now" in the store's time zone for omitted
// inputs and normalizes the rest.
func (s *service) resolveDateTime(date, clock string) (string, string, error) {
	now := time.Now().In(s.loc)
	if date == "" {
		date = now.Format(dateLayout)
	} else {
		var err error
		if date, err = normalizeDate(date); err != nil {
			return "", "", err
		}
	}
	if clock == "" {
		clock = now.Format(timeLayout)
	} else {
		var err error
		if clock, err = normalizeTime(clock); err != nil {
			return "", "", err
		}
	}
	return date, clock, nil
}

// lookupName snapshots the employee's current name for denormalized
// storage. Unknown employees clock in with a null name, like the original
// rows the migrator backfills.
func (s *service) lookupName(ctx context.Context, empNo string) *string {
	e, err := s.employees.FindByEmpNo(ctx, empNo)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("employee name lookup failed",
				zap.String("emp_no", empNo), zap.Error(err))
		}
		return nil
	}
	name := e.Name
	return &name
}

// laterShift orders two open records: later in_time wins, equal in_time
// falls back to the higher id.
func laterShift(a, b *Record) bool {
	at, aOK := parseClock(a.InTime)
	bt, bOK := parseClock(b.InTime)
	if aOK && bOK && !at.Equal(bt) {
		return at.After(bt)
	}
	return a.ID > b.ID
}

func mapAll(list []Record) []RecordResponse {
	res := make([]RecordResponse, len(list))
	for i, r := range list {
		res[i] = mapToResponse(r)
	}
	return res
}
