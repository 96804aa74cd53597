package tenancy

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

type scopedRow struct {
	ID        int64 `gorm:"primaryKey"`
	CompanyID int64
}

func TestResolveScope(t *testing.T) {
	scope, err := ResolveScope(authz.Actor{UserID: 1, Role: authz.RoleAdmin, CompanyID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), scope.CompanyID)
	assert.False(t, scope.Bypass)

	scope, err = ResolveScope(authz.Actor{UserID: 2, Role: authz.RoleMaster})
	require.NoError(t, err)
	assert.True(t, scope.Bypass)

	_, err = ResolveScope(authz.Actor{UserID: 3, Role: authz.RoleDriver})
	assert.Error(t, err, "non-master actors must carry a company id")
}

func TestApplyFiltersByCompany(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&scopedRow{}))
	require.NoError(t, gdb.Create(&scopedRow{ID: 1, CompanyID: 1}).Error)
	require.NoError(t, gdb.Create(&scopedRow{ID: 2, CompanyID: 2}).Error)

	var rows []scopedRow
	require.NoError(t, Apply(gdb.Model(&scopedRow{}), CompanyScope{CompanyID: 1}).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].CompanyID)

	rows = nil
	require.NoError(t, Apply(gdb.Model(&scopedRow{}), CompanyScope{Bypass: true}).Find(&rows).Error)
	assert.Len(t, rows, 2)
}
