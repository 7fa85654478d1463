package database

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Cosette-lara/library-catalog/internal/entities"
)

func TestNewDatabase_MigratesSchema(t *testing.T) {
	dbPath := "./test_migrate.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.DB.Migrator().HasTable("authors"))
	assert.True(t, db.DB.Migrator().HasTable("books"))
}

func TestNewDatabase_TranslatesUniqueViolations(t *testing.T) {
	dbPath := "./test_translate.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	first := &entities.Author{Name: "First", Email: "same@example.com"}
	require.NoError(t, db.DB.Create(first).Error)

	second := &entities.Author{Name: "Second", Email: "same@example.com"}
	err = db.DB.Create(second).Error

	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestNewDatabase_PersistsAcrossReopens(t *testing.T) {
	dbPath := "./test_reopen.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	author := &entities.Author{Name: "Durable", Email: "durable@example.com"}
	require.NoError(t, db.DB.Create(author).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestNewDatabase_EnforcesForeignKeys(t *testing.T) {
	dbPath := "./test_fk.db"
	defer os.Remove(dbPath)

	db, err := NewDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	author := &entities.Author{Name: "Owner", Email: "owner@example.com"}
	require.NoError(t, db.DB.Create(author).Error)
	book := &entities.Book{Title: "Owned", AuthorID: author.ID}
	require.NoError(t, db.DB.Create(book).Error)

	// Author delete cascades to the owned books
	require.NoError(t, db.DB.Delete(&entities.Author{}, "id = ?", author.ID).Error)

	var remaining int64
	require.NoError(t, db.DB.Model(&entities.Book{}).Count(&remaining).Error)
	assert.Equal(t, int64(0), remaining)
}
