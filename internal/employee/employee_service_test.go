package employee

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	employeeerrors "github.com/xkxksk1234/Attendance-Manager/internal/employee/errors"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, e *Employee) error
	findByEmpNoFn func(ctx context.Context, empNo string) (*Employee, error)
	findAllFn     func(ctx context.Context) ([]Employee, error)
	updateFn      func(ctx context.Context, e *Employee) (int64, error)
	upsertFn      func(ctx context.Context, e *Employee) error
	updateWageFn  func(ctx context.Context, empNo string, wage int64) (int64, error)
	deleteFn      func(ctx context.Context, empNo string) (int64, error)
}

func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindByEmpNo(ctx context.Context, empNo string) (*Employee, error) {
	return f.findByEmpNoFn(ctx, empNo)
}
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) { return f.findAllFn(ctx) }
func (f *fakeRepo) Update(ctx context.Context, e *Employee) (int64, error) {
	return f.updateFn(ctx, e)
}
func (f *fakeRepo) Upsert(ctx context.Context, e *Employee) error { return f.upsertFn(ctx, e) }
func (f *fakeRepo) UpdateWage(ctx context.Context, empNo string, wage int64) (int64, error) {
	return f.updateWageFn(ctx, empNo, wage)
}
func (f *fakeRepo) Delete(ctx context.Context, empNo string) (int64, error) {
	return f.deleteFn(ctx, empNo)
}

func TestService_Register(t *testing.T) {
	var saved Employee
	repo := &fakeRepo{
		findByEmpNoFn: func(ctx context.Context, empNo string) (*Employee, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, e *Employee) error {
			saved = *e
			return nil
		},
	}
	svc := NewService(repo)

	resp, err := svc.Register(context.Background(), CreateEmployeeRequest{
		EmpNo: "E01", Name: "Kim", HourlyWage: 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, "E01", resp.EmpNo)
	assert.Equal(t, "Kim", saved.Name)
}

func TestService_Register_Duplicate(t *testing.T) {
	repo := &fakeRepo{
		findByEmpNoFn: func(ctx context.Context, empNo string) (*Employee, error) {
			return &Employee{EmpNo: empNo}, nil
		},
		createFn: func(ctx context.Context, e *Employee) error {
			t.Fatal("duplicate must not be created")
			return nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), CreateEmployeeRequest{EmpNo: "E01", Name: "Kim"})
	assert.True(t, errors.Is(err, employeeerrors.ErrEmployeeAlreadyExists))
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.Register(ctx, CreateEmployeeRequest{Name: "Kim"})
	require.Error(t, err, "emp_no required")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)

	_, err = svc.Register(ctx, CreateEmployeeRequest{EmpNo: "E01"})
	assert.Error(t, err, "name required")

	_, err = svc.Register(ctx, CreateEmployeeRequest{EmpNo: "E01", Name: "Kim", HourlyWage: -1})
	assert.Error(t, err, "wage must be non-negative")
}

func TestService_Update_NotFound(t *testing.T) {
	repo := &fakeRepo{
		updateFn: func(ctx context.Context, e *Employee) (int64, error) { return 0, nil },
	}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), "E99", UpdateEmployeeRequest{Name: "Kim"})
	assert.True(t, errors.Is(err, employeeerrors.ErrEmployeeNotFound))
}

func TestService_UpdateWage(t *testing.T) {
	var gotWage int64
	repo := &fakeRepo{
		updateWageFn: func(ctx context.Context, empNo string, wage int64) (int64, error) {
			gotWage = wage
			return 1, nil
		},
	}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.UpdateWage(ctx, "E01", 15000))
	assert.EqualValues(t, 15000, gotWage)

	assert.Error(t, svc.UpdateWage(ctx, "E01", -5))
	assert.Error(t, svc.UpdateWage(ctx, "", 100))
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := &fakeRepo{
		deleteFn: func(ctx context.Context, empNo string) (int64, error) { return 0, nil },
	}
	svc := NewService(repo)

	err := svc.Delete(context.Background(), "E99")
	assert.True(t, errors.Is(err, employeeerrors.ErrEmployeeNotFound))
}
