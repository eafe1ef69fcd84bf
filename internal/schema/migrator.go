package schema

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
)

// Migrator guarantees that the employees and attendance tables exist with
// the current column set, whichever code version created the file. Failing
// to create a base table is fatal; optional column adds, backfills and
// index creation are best-effort and only logged.
type Migrator struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMigrator(db *gorm.DB, logger ...*zap.Logger) *Migrator {
	l := zap.L().Named("schema.migrator")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schema.migrator")
	}
	return &Migrator{db: db, logger: l}
}

const createEmployeesSQL = `
CREATE TABLE employees (
  emp_no        TEXT PRIMARY KEY,
  name          TEXT,
  position      TEXT,
  rrn           TEXT,
  phone         TEXT,
  wage          INTEGER DEFAULT 0,
  bank          TEXT,
  account       TEXT,
  address       TEXT,
  contract_date TEXT,
  memo          TEXT
)`

const createAttendanceSQL = `
CREATE TABLE %s (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  emp_no    TEXT NOT NULL,
  emp_name  TEXT,
  work_date TEXT NOT NULL,
  in_time   TEXT,
  out_date  TEXT,
  out_time  TEXT,
  memo      TEXT
)`

// column is one entry of the required column set. Source lists legacy
// names whose data feeds this column during a rebuild copy, newest first.
type column struct {
	name    string
	ddlType string
	sources []string
}

var employeeColumns = []column{
	{name: "name", ddlType: "TEXT"},
	{name: "position", ddlType: "TEXT"},
	{name: "rrn", ddlType: "TEXT"},
	{name: "phone", ddlType: "TEXT"},
	{name: "wage", ddlType: "INTEGER DEFAULT 0"},
	{name: "bank", ddlType: "TEXT"},
	{name: "account", ddlType: "TEXT"},
	{name: "address", ddlType: "TEXT"},
	{name: "contract_date", ddlType: "TEXT"},
	{name: "memo", ddlType: "TEXT"},
}

var attendanceColumns = []column{
	{name: "emp_no", ddlType: "TEXT", sources: []string{"emp_no"}},
	{name: "emp_name", ddlType: "TEXT", sources: []string{"emp_name"}},
	{name: "work_date", ddlType: "TEXT", sources: []string{"work_date", "date"}},
	{name: "in_time", ddlType: "TEXT", sources: []string{"in_time", "clock_in"}},
	{name: "out_date", ddlType: "TEXT", sources: []string{"out_date"}},
	{name: "out_time", ddlType: "TEXT", sources: []string{"out_time", "clock_out"}},
	{name: "memo", ddlType: "TEXT", sources: []string{"memo"}},
}

// Migrate runs every step. Safe to call on an already-current database:
// it performs zero structural changes and returns nil.
func (m *Migrator) Migrate() error {
	if err := m.ensureEmployees(); err != nil {
		return err
	}
	if err := m.ensureAttendance(); err != nil {
		return err
	}
	m.createIndexes()
	return nil
}

func (m *Migrator) ensureEmployees() error {
	ddl, err := m.tableDDL("employees")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "inspect employees table")
	}
	if ddl == "" {
		if err := m.db.Exec(createEmployeesSQL).Error; err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "create employees table")
		}
		return nil
	}

	cols, err := m.tableColumns("employees")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "inspect employees columns")
	}
	for _, c := range employeeColumns {
		m.addColumnIfMissing("employees", c, cols)
	}
	return nil
}

func (m *Migrator) ensureAttendance() error {
	ddl, err := m.tableDDL("attendance")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "inspect attendance table")
	}
	if ddl == "" {
		if err := m.db.Exec(fmt.Sprintf(createAttendanceSQL, "attendance")).Error; err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "create attendance table")
		}
		return nil
	}

	cols, err := m.tableColumns("attendance")
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "inspect attendance columns")
	}

	// Two legacy shapes cannot be fixed with a column add: no surrogate id,
	// and the old one-shift-per-day uniqueness constraint. Both require a
	// shadow-table rebuild.
	if !cols["id"] || strings.Contains(ddl, "UNIQUE(emp_no, work_date)") {
		if err := m.rebuildAttendance(cols); err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "rebuild attendance table")
		}
		return nil
	}

	for _, c := range attendanceColumns {
		if cols[c.name] {
			continue
		}
		if !m.addColumnIfMissing("attendance", c, cols) {
			continue
		}
		switch c.name {
		case "out_date":
			m.backfillOutDate()
		case "emp_name":
			m.backfillEmpName()
		}
	}
	return nil
}

// rebuildAttendance creates a shadow table with the target shape, copies
// rows over by explicit column list, then swaps it into place. The whole
// thing runs in one transaction with foreign-key checking suspended, so a
// crash mid-rebuild leaves the original table untouched.
func (m *Migrator) rebuildAttendance(existing map[string]bool) error {
	var dst, src []string
	for _, c := range attendanceColumns {
		for _, s := range c.sources {
			if existing[s] {
				dst = append(dst, quoteIdent(c.name))
				src = append(src, quoteIdent(s))
				break
			}
		}
	}
	if len(dst) == 0 {
		return fmt.Errorf("attendance table has no recognizable columns")
	}

	if err := m.db.Exec("PRAGMA foreign_keys=OFF;").Error; err != nil {
		return err
	}
	defer func() {
		if err := m.db.Exec("PRAGMA foreign_keys=ON;").Error; err != nil {
			m.logger.Warn("restore foreign_keys pragma failed", zap.Error(err))
		}
	}()

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(fmt.Sprintf(createAttendanceSQL, "attendance_new")).Error; err != nil {
			return err
		}
		copySQL := fmt.Sprintf(
			"INSERT INTO attendance_new (%s) SELECT %s FROM attendance",
			strings.Join(dst, ", "), strings.Join(src, ", "),
		)
		if err := tx.Exec(copySQL).Error; err != nil {
			return err
		}
		if err := tx.Exec("DROP TABLE attendance").Error; err != nil {
			return err
		}
		return tx.Exec("ALTER TABLE attendance_new RENAME TO attendance").Error
	})
	if err != nil {
		return err
	}

	m.logger.Info("attendance table rebuilt", zap.Strings("copied_columns", src))

	// The rebuilt table has the full column set; run the backfills the
	// column-add path would have run.
	if !existing["out_date"] {
		m.backfillOutDate()
	}
	if !existing["emp_name"] {
		m.backfillEmpName()
	}
	return nil
}

// addColumnIfMissing reports whether the column is present afterwards.
// Failure to add leaves the store usable in a degraded state.
func (m *Migrator) addColumnIfMissing(table string, c column, existing map[string]bool) bool {
	if existing[c.name] {
		return true
	}
	sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, quoteIdent(c.name), c.ddlType)
	if err := m.db.Exec(sql).Error; err != nil {
		m.logger.Warn("add column failed, continuing un-migrated",
			zap.String("table", table),
			zap.String("column", c.name),
			zap.Error(err))
		return false
	}
	existing[c.name] = true
	return true
}

// backfillOutDate derives out_date for pre-existing rows: an out_time
// earlier than in_time as a time of day means the shift ran past midnight.
func (m *Migrator) backfillOutDate() {
	err := m.db.Exec(`
		UPDATE attendance
		SET out_date = CASE
			WHEN out_time IS NOT NULL AND in_time IS NOT NULL
			     AND time(out_time) < time(in_time)
			     THEN date(work_date, '+1 day')
			ELSE work_date
		END
		WHERE out_date IS NULL`).Error
	if err != nil {
		m.logger.Warn("out_date backfill failed", zap.Error(err))
	}
}

// backfillEmpName snapshots the current employee name onto old rows.
// Rows whose employee no longer exists keep a null name.
func (m *Migrator) backfillEmpName() {
	err := m.db.Exec(`
		UPDATE attendance
		SET emp_name = (SELECT name FROM employees WHERE employees.emp_no = attendance.emp_no)
		WHERE emp_name IS NULL`).Error
	if err != nil {
		m.logger.Warn("emp_name backfill failed", zap.Error(err))
	}
}

// createIndexes is best-effort: a missing index slows queries down but
// must never fail store construction.
func (m *Migrator) createIndexes() {
	cols, err := m.tableColumns("attendance")
	if err != nil {
		m.logger.Warn("skip index creation", zap.Error(err))
		return
	}
	stmts := []struct {
		needs string
		sql   string
	}{
		{"work_date", "CREATE INDEX IF NOT EXISTS idx_att_emp_date ON attendance(emp_no, work_date)"},
		{"work_date", "CREATE INDEX IF NOT EXISTS idx_att_date ON attendance(work_date)"},
		{"out_date", "CREATE INDEX IF NOT EXISTS idx_att_out_date ON attendance(out_date)"},
	}
	for _, s := range stmts {
		if !cols[s.needs] {
			continue
		}
		if err := m.db.Exec(s.sql).Error; err != nil {
			m.logger.Warn("create index failed", zap.String("sql", s.sql), zap.Error(err))
		}
	}
}

// tableDDL returns the stored CREATE statement, or "" when the table does
// not exist.
func (m *Migrator) tableDDL(table string) (string, error) {
	var ddl string
	err := m.db.Raw(
		"SELECT sql FROM sqlite_master WHERE type='table' AND name=?", table,
	).Scan(&ddl).Error
	if err != nil {
		return "", err
	}
	return ddl, nil
}

// tableColumns reads the actual column set via PRAGMA introspection.
func (m *Migrator) tableColumns(table string) (map[string]bool, error) {
	var rows []struct {
		Name string
	}
	err := m.db.Raw(fmt.Sprintf("PRAGMA table_info(%s)", table)).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	cols := make(map[string]bool, len(rows))
	for _, r := range rows {
		cols[strings.ToLower(r.Name)] = true
	}
	return cols, nil
}

func quoteIdent(s string) string {
	return `"` + s + `"`
}
