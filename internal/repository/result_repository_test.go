package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type ctxKey struct{}

// dryRunDB 只生成 SQL，不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "survey:survey@tcp(127.0.0.1:3306)/survey?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestResultRepository_FindByGroupID(t *testing.T) {
	db := dryRunDB(t)

	var (
		sql  string
		vars []interface{}
		got  context.Context
	)
	err := db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
		vars = tx.Statement.Vars
		got = tx.Statement.Context
	})
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), ctxKey{}, "export")
	_, err = NewResultRepository(db).FindByGroupID(ctx, 7)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "export", got.Value(ctxKey{}))
	assert.Contains(t, sql, "survey_id IN (SELECT `id` FROM `surveys` WHERE survey_group_id = ?")
	assert.Contains(t, vars, uint(7))
}
