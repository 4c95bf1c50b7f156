package gormsource

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/simp-lee/alchemist/paging"
)

type note struct {
	ID    uint `gorm:"primaryKey"`
	Title string
	Tag   string
}

func setupDB(t *testing.T, n int) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&note{}))

	for i := 1; i <= n; i++ {
		tag := "odd"
		if i%2 == 0 {
			tag = "even"
		}
		require.NoError(t, db.Create(&note{Title: fmt.Sprintf("note %02d", i), Tag: tag}).Error)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestSource_Paginate(t *testing.T) {
	db := setupDB(t, 23)
	src := New[note](db.Order("id ASC"))
	ctx := context.Background()

	p, err := paging.Paginate[note](ctx, src, 3, paging.Config{PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, 23, p.Total)
	assert.Equal(t, 3, p.Pages)
	require.Len(t, p.Items, 3)
	assert.Equal(t, uint(21), p.Items[0].ID)
	assert.Equal(t, 21, p.First)
	assert.Equal(t, 23, p.Last)

	_, err = paging.Paginate[note](ctx, src, 4, paging.Config{PerPage: 10})
	assert.ErrorIs(t, err, paging.ErrOutOfRange)
}

func TestSource_CountIgnoresLimitAndOffset(t *testing.T) {
	db := setupDB(t, 15)
	src := New[note](db.Order("id DESC").Limit(2).Offset(4))

	n, err := src.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	rows, err := src.Fetch(context.Background(), 0, 5)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, uint(15), rows[0].ID)
}

func TestSource_FirstPageDropsQueryOffset(t *testing.T) {
	db := setupDB(t, 12)
	src := New[note](db.Order("id DESC").Offset(4).Limit(2))
	ctx := context.Background()

	p, err := paging.Paginate[note](ctx, src, 1, paging.Config{PerPage: 5})
	require.NoError(t, err)
	require.Len(t, p.Items, 5)
	assert.Equal(t, 12, p.Total)
	assert.Equal(t, []uint{12, 11, 10, 9, 8}, ids(p.Items))

	p, err = paging.Paginate[note](ctx, src, 3, paging.Config{PerPage: 5})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, ids(p.Items))
}

func ids(rows []note) []uint {
	out := make([]uint, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSource_FilteredQueryIsReusable(t *testing.T) {
	db := setupDB(t, 20)
	src := New[note](db.Where("tag = ?", "even").Order("id ASC"))
	ctx := context.Background()

	for range 2 {
		n, err := src.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 10, n)

		rows, err := src.Fetch(ctx, 4, 4)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, uint(10), rows[0].ID)
	}
}

func TestSource_EmptyTable(t *testing.T) {
	db := setupDB(t, 0)
	p, err := paging.Paginate[note](context.Background(), New[note](db), 1, paging.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Pages)
	assert.Empty(t, p.Items)
}

func TestSource_ErrorsAreSourceErrors(t *testing.T) {
	db := setupDB(t, 1)
	src := New[note](db.Table("missing_table"))

	_, err := paging.Paginate[note](context.Background(), src, 1, paging.DefaultConfig())
	require.Error(t, err)
	var se *paging.SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "count", se.Op)
}
