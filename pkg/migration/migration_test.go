package migration

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/stockroom/pkg/database"
)

type widget struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

type createWidgets struct{}

func (createWidgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&widget{}) }
func (createWidgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&widget{}) }

func newRunner(t *testing.T) (*Runner, *gorm.DB, *bytes.Buffer) {
	t.Helper()
	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var out bytes.Buffer
	r := &Runner{
		db:         db,
		out:        &out,
		migrations: []registered{{name: "20260101000000_create_widgets", m: createWidgets{}}},
	}
	return r, db, &out
}

func TestRunThenNothingPending(t *testing.T) {
	r, db, out := newRunner(t)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable(&widget{}))
	assert.Contains(t, out.String(), "Migrated: 20260101000000_create_widgets")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	out.Reset()
	require.NoError(t, r.Run())
	assert.Equal(t, "Nothing to migrate.\n", out.String())
}

func TestRollback(t *testing.T) {
	r, db, out := newRunner(t)

	require.NoError(t, r.Run())
	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable(&widget{}))

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"20260101000000_create_widgets"}, pending)

	out.Reset()
	require.NoError(t, r.Rollback())
	assert.Equal(t, "Nothing to roll back.\n", out.String())
}

func TestStatus(t *testing.T) {
	r, _, out := newRunner(t)

	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Pending")

	require.NoError(t, r.Run())
	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "Ran")
}
