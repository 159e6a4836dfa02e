package orm

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autoparts/pkg/database"
	"autoparts/pkg/metrics"
)

type widget struct {
	gorm.Model
	Name string
}

func setupDB(t *testing.T, rows int) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	for i := 0; i < rows; i++ {
		require.NoError(t, db.Create(&widget{Name: fmt.Sprintf("w%02d", i)}).Error)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func TestGetWithPaginationNormalisesInput(t *testing.T) {
	setupDB(t, 25)

	var out []widget
	p, err := DB().Model(&widget{}).GetWithPagination(&out, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.EqualValues(t, 25, p.Total)
	assert.Equal(t, 3, p.Pages)
	assert.Len(t, out, 10)

	p, err = DB().Model(&widget{}).GetWithPagination(&out, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Limit)
	assert.Len(t, out, 25)
}

func TestGetWithPaginationLastPage(t *testing.T) {
	setupDB(t, 25)

	var out []widget
	p, err := DB().Model(&widget{}).Order("id asc").GetWithPagination(&out, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, out, 5)
	assert.Equal(t, "w20", out[0].Name)

	// Past the end: empty page, same metadata.
	p, err = DB().Model(&widget{}).GetWithPagination(&out, 9, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, 3, p.Pages)
}

func TestFirstNotFound(t *testing.T) {
	setupDB(t, 0)

	var w widget
	err := DB().Model(&widget{}).Where("name = ?", "nope").First(&w)
	assert.True(t, IsNotFound(err))
}

func TestFinishersFeedQueryHistogram(t *testing.T) {
	setupDB(t, 1)

	var out []widget
	require.NoError(t, DB().Model(&widget{}).Get(&out))
	require.NoError(t, DB().Create(&widget{Name: "timed"}))

	// One series per observed operation label.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.DBQueryDuration), 2)
}

func TestTransactionRollsBack(t *testing.T) {
	setupDB(t, 0)

	err := Transaction(func(tx *Query) error {
		if err := tx.Create(&widget{Name: "doomed"}); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	var n int64
	require.NoError(t, DB().Model(&widget{}).Count(&n))
	assert.Zero(t, n)
}
