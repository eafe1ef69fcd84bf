package employee

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindByEmpNo(ctx context.Context, empNo string) (*Employee, error)
	FindAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, e *Employee) (int64, error)
	Upsert(ctx context.Context, e *Employee) error
	UpdateWage(ctx context.Context, empNo string, wage int64) (int64, error)
	Delete(ctx context.Context, empNo string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindByEmpNo(ctx context.Context, empNo string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		First(&e, "emp_no = ?", empNo).Error
	return &e, err
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var list []Employee
	err := r.db.WithContext(ctx).
		Order("emp_no ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) Update(ctx context.Context, e *Employee) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("emp_no = ?", e.EmpNo).
		Select("*").
		Omit("emp_no").
		Updates(e)
	return res.RowsAffected, res.Error
}

// Upsert updates the row when emp_no already exists, inserts otherwise.
func (r *repository) Upsert(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "emp_no"}},
			UpdateAll: true,
		}).
		Create(e).Error
}

func (r *repository) UpdateWage(ctx context.Context, empNo string, wage int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("emp_no = ?", empNo).
		Update("wage", wage)
	return res.RowsAffected, res.Error
}

// Delete removes the employee row only. Attendance rows keep their emp_no;
// the reference is advisory, never cascaded.
func (r *repository) Delete(ctx context.Context, empNo string) (int64, error) {
	res := r.db.WithContext(ctx).
		Delete(&Employee{}, "emp_no = ?", empNo)
	return res.RowsAffected, res.Error
}
