package app

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xkxksk1234/Attendance-Manager/internal/attendance"
	"github.com/xkxksk1234/Attendance-Manager/internal/employee"
	"github.com/xkxksk1234/Attendance-Manager/internal/schema"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/connection"
)

// App is an open attendance ledger: the explicit handle replacing the
// original application's ambient "current store" global. Callers may run
// several Apps against different files in one process.
type App struct {
	DB *gorm.DB

	Employees     employee.Service
	EmployeeStore employee.Repository
	Attendance    attendance.Service
	Records       attendance.Repository
}

// New opens (creating if needed) the database at dbPath, migrates the
// schema to the current shape, and wires the stores and services. A base
// table that cannot be created is fatal; degraded migration steps only log.
func New(dbPath string, loc *time.Location, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.L()
	}

	db, err := connection.OpenSQLite(dbPath)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "open attendance database")
	}

	if err := schema.NewMigrator(db, logger).Migrate(); err != nil {
		return nil, err
	}

	empRepo := employee.NewRepository(db)
	attRepo := attendance.NewRepository(db)

	return &App{
		DB:            db,
		Employees:     employee.NewService(empRepo, logger),
		EmployeeStore: empRepo,
		Attendance:    attendance.NewService(attRepo, empRepo, loc, logger),
		Records:       attRepo,
	}, nil
}

func (a *App) Close() error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
