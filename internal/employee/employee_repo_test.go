package employee

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xkxksk1234/Attendance-Manager/internal/schema"
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/connection"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := connection.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, schema.NewMigrator(db, zap.NewNop()).Migrate())
	return NewRepository(db)
}

func strptr(s string) *string { return &s }

func TestRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	e := Employee{
		EmpNo:      "E01",
		Name:       "Kim",
		Position:   strptr("manager"),
		HourlyWage: 12000,
	}
	require.NoError(t, repo.Create(ctx, &e))

	got, err := repo.FindByEmpNo(ctx, "E01")
	require.NoError(t, err)
	assert.Equal(t, "Kim", got.Name)
	require.NotNil(t, got.Position)
	assert.Equal(t, "manager", *got.Position)
	assert.EqualValues(t, 12000, got.HourlyWage)

	_, err = repo.FindByEmpNo(ctx, "E99")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepository_FindAllOrderedByEmpNo(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, no := range []string{"E03", "E01", "E02"} {
		require.NoError(t, repo.Create(ctx, &Employee{EmpNo: no, Name: "x"}))
	}

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "E01", list[0].EmpNo)
	assert.Equal(t, "E02", list[1].EmpNo)
	assert.Equal(t, "E03", list[2].EmpNo)
}

func TestRepository_Upsert(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &Employee{EmpNo: "E01", Name: "Kim", HourlyWage: 10000}))
	require.NoError(t, repo.Upsert(ctx, &Employee{EmpNo: "E01", Name: "Kim Jr", HourlyWage: 11000}))

	list, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1, "upsert must not duplicate the key")
	assert.Equal(t, "Kim Jr", list[0].Name)
	assert.EqualValues(t, 11000, list[0].HourlyWage)
}

func TestRepository_UpdateWage(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Employee{EmpNo: "E01", Name: "Kim", HourlyWage: 10000}))

	rows, err := repo.UpdateWage(ctx, "E01", 13000)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	got, err := repo.FindByEmpNo(ctx, "E01")
	require.NoError(t, err)
	assert.EqualValues(t, 13000, got.HourlyWage)
	assert.Equal(t, "Kim", got.Name, "only the wage changes")

	rows, err = repo.UpdateWage(ctx, "E99", 13000)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Employee{EmpNo: "E01", Name: "Kim"}))

	rows, err := repo.Delete(ctx, "E01")
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	rows, err = repo.Delete(ctx, "E01")
	require.NoError(t, err)
	assert.Zero(t, rows)
}
