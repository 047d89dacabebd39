package config

import (
	"testing"

	"libradesk/internal/adapters/persistence/models"
	"libradesk/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeederTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestSeeder_SeedsAdminAndCatalog(t *testing.T) {
	db := openSeederTestDB(t)
	require.NoError(t, NewSeeder(db).Run())

	var admin models.User
	require.NoError(t, db.Where("email = ?", "admin@library.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)
	assert.True(t, password.Verify("admin123", admin.Password))

	var books []models.Book
	require.NoError(t, db.Order("isbn").Find(&books).Error)
	require.Len(t, books, 3)
	for _, b := range books {
		assert.Equal(t, b.TotalCopies, b.AvailableCopies, "seeded books start fully shelved")
		assert.True(t, b.IsActive)
	}
}

func TestSeeder_Idempotent(t *testing.T) {
	db := openSeederTestDB(t)
	require.NoError(t, NewSeeder(db).Run())
	require.NoError(t, NewSeeder(db).Run())

	var userCount, bookCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Book{}).Count(&bookCount).Error)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(3), bookCount)
}

func TestSeeder_SkipsWhenAdminExists(t *testing.T) {
	db := openSeederTestDB(t)

	existing := &models.User{
		Name:     "Existing Admin",
		Email:    "ops@library.com",
		Password: "hash",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(existing).Error)

	require.NoError(t, NewSeeder(db).Run())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count, "a present admin suppresses the default account")
}
