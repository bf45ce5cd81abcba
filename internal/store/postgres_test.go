package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/groupcode/internal/code"
	"github.com/ugaemi/groupcode/internal/group"
)

var testTable = Table{Kind: code.Class, Collection: "test_class_groups", Column: "join_code"}

func getTestDatabaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping PostgreSQL integration test")
	}
	return url
}

func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := getTestDatabaseURL(t)
	ctx := context.Background()

	s, err := NewPostgresStore(ctx, url, testTable)
	require.NoError(t, err)

	// Clean up table for test isolation
	_, err = s.pool.Exec(ctx, "DELETE FROM test_class_groups")
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestPostgresStore_CreateAndFindByCode(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	g := group.New(code.Class, "3-A", "C7K9QX")
	require.NoError(t, s.Create(ctx, testTable, g))

	found, err := s.FindByCode(ctx, testTable, "C7K9QX")
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, g.ID, found.ID)
	assert.Equal(t, "3-A", found.Name)
	assert.Equal(t, code.Class, found.Kind)
}

func TestPostgresStore_FindByCode_NotFound(t *testing.T) {
	s := setupTestStore(t)

	found, err := s.FindByCode(context.Background(), testTable, "CAAAAA")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestPostgresStore_Exists(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	exists, err := s.Exists(ctx, testTable.Collection, testTable.Column, "C7K9QX")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Create(ctx, testTable, group.New(code.Class, "3-A", "C7K9QX")))

	exists, err = s.Exists(ctx, testTable.Collection, testTable.Column, "C7K9QX")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestPostgresStore_Exists_UnknownTable(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Exists(context.Background(), "no_such_table", "code", "C7K9QX")
	assert.Error(t, err)
}

func TestPostgresStore_DuplicateCode(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testTable, group.New(code.Class, "3-A", "C7K9QX")))

	err := s.Create(ctx, testTable, group.New(code.Class, "3-B", "C7K9QX"))
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestPostgresStore_UpdateCode(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	g := group.New(code.Class, "3-A", "C7K9QX")
	require.NoError(t, s.Create(ctx, testTable, g))

	require.NoError(t, s.UpdateCode(ctx, testTable, "C7K9QX", "CNEW22"))

	old, err := s.FindByCode(ctx, testTable, "C7K9QX")
	require.NoError(t, err)
	assert.Nil(t, old)

	found, err := s.FindByCode(ctx, testTable, "CNEW22")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, g.ID, found.ID)
}

func TestPostgresStore_UpdateCode_Errors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, testTable, group.New(code.Class, "3-A", "CAAAAA")))
	require.NoError(t, s.Create(ctx, testTable, group.New(code.Class, "3-B", "CBBBBB")))

	assert.ErrorIs(t, s.UpdateCode(ctx, testTable, "CZZZZZ", "CYYYYY"), ErrNotFound)
	assert.ErrorIs(t, s.UpdateCode(ctx, testTable, "CAAAAA", "CBBBBB"), ErrCodeTaken)
}
