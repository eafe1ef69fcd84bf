package attendance

import (
	"context"

	"gorm.io/gorm"

	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
)

// recordOrdering is depended on by duplicate-shift detection in the
// presentation layer and must stay exact.
const recordOrdering = "work_date ASC, in_time ASC, emp_no ASC, id ASC"

// openShift matches rows with no clock-out. Legacy databases may hold ''
// where new code writes NULL.
const openShift = "(out_time IS NULL OR out_time = '')"

type Repository interface {
	InsertOpen(ctx context.Context, rec *Record) (int64, error)
	CloseByID(ctx context.Context, id int64, outDate, outTime string, memo *string) (int64, error)
	CloseByKey(ctx context.Context, empNo, workDate, inTime, outDate, outTime string, memo *string) (int64, error)
	CloseLatestOpen(ctx context.Context, empNo, outDate, outTime string) (int64, error)
	FindByDate(ctx context.Context, date string) ([]Record, error)
	FindByMonth(ctx context.Context, yearMonth string) ([]Record, error)
	FindByID(ctx context.Context, id int64) (*Record, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	DeleteByKey(ctx context.Context, empNo, workDate, inTime string, outTime *string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// InsertOpen appends a new open record and returns the generated id.
func (r *repository) InsertOpen(ctx context.Context, rec *Record) (int64, error) {
	switch {
	case rec.EmpNo == "":
		return 0, apperror.RequiredField("emp_no")
	case rec.WorkDate == "":
		return 0, apperror.RequiredField("work_date")
	case rec.InTime == "":
		return 0, apperror.RequiredField("in_time")
	}
	rec.ID = 0
	rec.OutDate = nil
	rec.OutTime = nil
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, err
	}
	return rec.ID, nil
}

// CloseByID sets the close fields on the exact record. A nil memo leaves
// the existing memo untouched; a non-nil one replaces it.
func (r *repository) CloseByID(ctx context.Context, id int64, outDate, outTime string, memo *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"out_date": outDate,
			"out_time": outTime,
			"memo":     gorm.Expr("COALESCE(?, memo)", memo),
		})
	return res.RowsAffected, res.Error
}

// CloseByKey is CloseByID addressed by the composite natural key, for
// callers that never learned the surrogate id.
func (r *repository) CloseByKey(ctx context.Context, empNo, workDate, inTime, outDate, outTime string, memo *string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("emp_no = ? AND work_date = ? AND in_time = ?", empNo, workDate, inTime).
		Updates(map[string]any{
			"out_date": outDate,
			"out_time": outTime,
			"memo":     gorm.Expr("COALESCE(?, memo)", memo),
		})
	return res.RowsAffected, res.Error
}

// CloseLatestOpen closes the employee's most recently opened shift,
// regardless of date: the open row with the greatest id.
func (r *repository) CloseLatestOpen(ctx context.Context, empNo, outDate, outTime string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = (SELECT id FROM attendance WHERE emp_no = ? AND "+openShift+" ORDER BY id DESC LIMIT 1)", empNo).
		Updates(map[string]any{
			"out_date": outDate,
			"out_time": outTime,
		})
	return res.RowsAffected, res.Error
}

// FindByDate returns every record that started or ended on the given day,
// so an overnight shift shows up on both of its calendar days.
func (r *repository) FindByDate(ctx context.Context, date string) ([]Record, error) {
	var list []Record
	err := r.db.WithContext(ctx).
		Where("work_date = ? OR out_date = ?", date, date).
		Order(recordOrdering).
		Find(&list).Error
	return list, err
}

func (r *repository) FindByMonth(ctx context.Context, yearMonth string) ([]Record, error) {
	var list []Record
	err := r.db.WithContext(ctx).
		Where("substr(work_date, 1, 7) = ?", yearMonth).
		Order(recordOrdering).
		Find(&list).Error
	return list, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		First(&rec, "id = ?", id).Error
	return &rec, err
}

func (r *repository) DeleteByID(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&Record{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// DeleteByKey deletes by composite key. An absent outTime matches only
// records whose out_time is also absent.
func (r *repository) DeleteByKey(ctx context.Context, empNo, workDate, inTime string, outTime *string) (int64, error) {
	q := r.db.WithContext(ctx).
		Where("emp_no = ? AND work_date = ? AND in_time = ?", empNo, workDate, inTime)
	if outTime == nil || *outTime == "" {
		q = q.Where(openShift)
	} else {
		q = q.Where("out_time = ?", *outTime)
	}
	res := q.Delete(&Record{})
	return res.RowsAffected, res.Error
}
