package schema

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xkxksk1234/Attendance-Manager/internal/shared/connection"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := connection.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func migrate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, NewMigrator(db, zap.NewNop()).Migrate())
}

func columns(t *testing.T, db *gorm.DB, table string) map[string]bool {
	t.Helper()
	cols, err := NewMigrator(db, zap.NewNop()).tableColumns(table)
	require.NoError(t, err)
	return cols
}

func TestMigrate_FreshDatabase(t *testing.T) {
	db := newTestDB(t)
	migrate(t, db)

	for _, col := range []string{"id", "emp_no", "emp_name", "work_date", "in_time", "out_date", "out_time", "memo"} {
		assert.True(t, columns(t, db, "attendance")[col], "attendance missing %s", col)
	}
	for _, col := range []string{"emp_no", "name", "position", "rrn", "phone", "wage", "bank", "account", "address", "contract_date", "memo"} {
		assert.True(t, columns(t, db, "employees")[col], "employees missing %s", col)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	migrate(t, db)

	m := NewMigrator(db, zap.NewNop())
	before, err := m.tableDDL("attendance")
	require.NoError(t, err)

	// A second run against a current database must change nothing.
	require.NoError(t, m.Migrate())
	require.NoError(t, m.Migrate())

	after, err := m.tableDDL("attendance")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMigrate_LegacyTableWithoutID(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`
		CREATE TABLE attendance (
		  emp_no    TEXT NOT NULL,
		  work_date TEXT NOT NULL,
		  in_time   TEXT,
		  out_time  TEXT,
		  memo      TEXT
		)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO attendance (emp_no, work_date, in_time, out_time, memo) VALUES
		 ('E01', '2024-01-10', '09:00:00', '18:00:00', 'normal'),
		 ('E01', '2024-01-10', '23:50:00', '00:10:00', 'overnight'),
		 ('E02', '2024-01-11', '10:00:00', NULL, NULL)`).Error)

	migrate(t, db)

	cols := columns(t, db, "attendance")
	assert.True(t, cols["id"])
	assert.True(t, cols["out_date"])
	assert.True(t, cols["emp_name"])

	var n int64
	require.NoError(t, db.Raw("SELECT count(*) FROM attendance").Scan(&n).Error)
	assert.EqualValues(t, 3, n)

	// Pre-existing values survive the rebuild untouched.
	type row struct {
		ID      int64
		EmpNo   string
		OutDate *string
		OutTime *string
		Memo    *string
	}
	var overnight row
	require.NoError(t, db.Raw(
		"SELECT id, emp_no AS emp_no, out_date, out_time, memo FROM attendance WHERE in_time = '23:50:00'",
	).Scan(&overnight).Error)
	assert.NotZero(t, overnight.ID)
	assert.Equal(t, "E01", overnight.EmpNo)
	require.NotNil(t, overnight.OutDate)
	assert.Equal(t, "2024-01-11", *overnight.OutDate, "overnight backfill adds one day")
	require.NotNil(t, overnight.Memo)
	assert.Equal(t, "overnight", *overnight.Memo)

	var sameDay sql.NullString
	require.NoError(t, db.Raw(
		"SELECT out_date FROM attendance WHERE in_time = '09:00:00'",
	).Scan(&sameDay).Error)
	require.True(t, sameDay.Valid)
	assert.Equal(t, "2024-01-10", sameDay.String)
}

func TestMigrate_LegacyUniquePerDayConstraint(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`
		CREATE TABLE attendance (
		  id        INTEGER PRIMARY KEY AUTOINCREMENT,
		  emp_no    TEXT NOT NULL,
		  work_date TEXT NOT NULL,
		  in_time   TEXT,
		  out_time  TEXT,
		  memo      TEXT,
		  UNIQUE(emp_no, work_date)
		)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO attendance (emp_no, work_date, in_time, out_time) VALUES
		 ('E01', '2024-02-01', '09:00:00', '18:00:00')`).Error)

	migrate(t, db)

	// The per-day uniqueness constraint is gone: a second shift on the
	// same day inserts cleanly.
	require.NoError(t, db.Exec(
		`INSERT INTO attendance (emp_no, work_date, in_time) VALUES
		 ('E01', '2024-02-01', '19:00:00')`).Error)

	var n int64
	require.NoError(t, db.Raw(
		"SELECT count(*) FROM attendance WHERE emp_no = 'E01' AND work_date = '2024-02-01'",
	).Scan(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestMigrate_LegacyClockColumnNames(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`
		CREATE TABLE attendance (
		  emp_no    TEXT NOT NULL,
		  work_date TEXT NOT NULL,
		  clock_in  TEXT,
		  clock_out TEXT,
		  memo      TEXT
		)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO attendance (emp_no, work_date, clock_in, clock_out) VALUES
		 ('E01', '2024-03-05', '09:30:00', '17:30:00')`).Error)

	migrate(t, db)

	type row struct {
		InTime  *string
		OutTime *string
	}
	var r row
	require.NoError(t, db.Raw("SELECT in_time, out_time FROM attendance").Scan(&r).Error)
	require.NotNil(t, r.InTime)
	assert.Equal(t, "09:30:00", *r.InTime)
	require.NotNil(t, r.OutTime)
	assert.Equal(t, "17:30:00", *r.OutTime)
}

func TestMigrate_EmpNameBackfill(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(createEmployeesSQL).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO employees (emp_no, name) VALUES ('E01', 'Kim')`).Error)
	require.NoError(t, db.Exec(`
		CREATE TABLE attendance (
		  id        INTEGER PRIMARY KEY AUTOINCREMENT,
		  emp_no    TEXT NOT NULL,
		  work_date TEXT NOT NULL,
		  in_time   TEXT,
		  out_time  TEXT,
		  memo      TEXT
		)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO attendance (emp_no, work_date, in_time) VALUES
		 ('E01', '2024-04-01', '09:00:00'),
		 ('GONE', '2024-04-01', '09:00:00')`).Error)

	migrate(t, db)

	var known sql.NullString
	require.NoError(t, db.Raw(
		"SELECT emp_name FROM attendance WHERE emp_no = 'E01'").Scan(&known).Error)
	require.True(t, known.Valid)
	assert.Equal(t, "Kim", known.String)

	var gone sql.NullString
	require.NoError(t, db.Raw(
		"SELECT emp_name FROM attendance WHERE emp_no = 'GONE'").Scan(&gone).Error)
	assert.False(t, gone.Valid, "rows whose employee no longer exists keep a null name")
}

func TestMigrate_EmployeesMissingColumns(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Exec(`
		CREATE TABLE employees (
		  emp_no TEXT PRIMARY KEY,
		  name   TEXT
		)`).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO employees (emp_no, name) VALUES ('E01', 'Kim')`).Error)

	migrate(t, db)

	cols := columns(t, db, "employees")
	for _, col := range []string{"position", "rrn", "phone", "wage", "bank", "account", "address", "contract_date", "memo"} {
		assert.True(t, cols[col], "employees missing %s", col)
	}

	var name string
	require.NoError(t, db.Raw(
		"SELECT name FROM employees WHERE emp_no = 'E01'").Scan(&name).Error)
	assert.Equal(t, "Kim", name)
}
