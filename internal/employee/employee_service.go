package employee

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	employeeerrors "github.com/xkxksk1234/Attendance-Manager/internal/employee/errors"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/contextutil"
)

type Service interface {
	Register(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByEmpNo(ctx context.Context, empNo string) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	Update(ctx context.Context, empNo string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Upsert(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateWage(ctx context.Context, empNo string, wage int64) error
	Delete(ctx context.Context, empNo string) error
}

type service struct {
	repo     Repository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:     repo,
		validate: validator.New(),
		logger:   l,
	}
}

func (s *service) Register(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return EmployeeResponse{}, apperror.MapValidationError(err)
	}

	if _, err := s.repo.FindByEmpNo(ctx, req.EmpNo); err == nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "look up employee")
	}

	e := fromCreateRequest(req)
	if err := s.repo.Create(ctx, &e); err != nil {
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "register employee")
	}

	s.logger.Info("employee registered",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("emp_no", e.EmpNo))
	return mapToResponse(e), nil
}

func (s *service) GetByEmpNo(ctx context.Context, empNo string) (EmployeeResponse, error) {
	if empNo == "" {
		return EmployeeResponse{}, apperror.RequiredField("emp_no")
	}
	e, err := s.repo.FindByEmpNo(ctx, empNo)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "look up employee")
	}
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "list employees")
	}
	res := make([]EmployeeResponse, len(list))
	for i, e := range list {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, empNo string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if empNo == "" {
		return EmployeeResponse{}, apperror.RequiredField("emp_no")
	}
	if err := s.validate.Struct(req); err != nil {
		return EmployeeResponse{}, apperror.MapValidationError(err)
	}

	e := Employee{
		EmpNo:        empNo,
		Name:         req.Name,
		Position:     req.Position,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		HourlyWage:   req.HourlyWage,
		Bank:         req.Bank,
		Account:      req.Account,
		Address:      req.Address,
		ContractDate: req.ContractDate,
		Memo:         req.Memo,
	}
	rows, err := s.repo.Update(ctx, &e)
	if err != nil {
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "update employee")
	}
	if rows == 0 {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}
	return mapToResponse(e), nil
}

func (s *service) Upsert(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return EmployeeResponse{}, apperror.MapValidationError(err)
	}
	e := fromCreateRequest(req)
	if err := s.repo.Upsert(ctx, &e); err != nil {
		return EmployeeResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "upsert employee")
	}
	return mapToResponse(e), nil
}

func (s *service) UpdateWage(ctx context.Context, empNo string, wage int64) error {
	if empNo == "" {
		return apperror.RequiredField("emp_no")
	}
	if wage < 0 {
		return apperror.InvalidField("hourly_wage")
	}
	rows, err := s.repo.UpdateWage(ctx, empNo, wage)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "update wage")
	}
	if rows == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, empNo string) error {
	if empNo == "" {
		return apperror.RequiredField("emp_no")
	}
	rows, err := s.repo.Delete(ctx, empNo)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "delete employee")
	}
	if rows == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	s.logger.Info("employee deleted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("emp_no", empNo))
	return nil
}

func fromCreateRequest(req CreateEmployeeRequest) Employee {
	return Employee{
		EmpNo:        req.EmpNo,
		Name:         req.Name,
		Position:     req.Position,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		HourlyWage:   req.HourlyWage,
		Bank:         req.Bank,
		Account:      req.Account,
		Address:      req.Address,
		ContractDate: req.ContractDate,
		Memo:         req.Memo,
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		EmpNo:        e.EmpNo,
		Name:         e.Name,
		Position:     e.Position,
		NationalID:   e.NationalID,
		Phone:        e.Phone,
		HourlyWage:   e.HourlyWage,
		Bank:         e.Bank,
		Account:      e.Account,
		Address:      e.Address,
		ContractDate: e.ContractDate,
		Memo:         e.Memo,
	}
}
