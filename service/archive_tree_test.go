package service

import (
	"testing"

	"artvault/archive-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ptr(v uint) *uint {
	return &v
}

func TestBuildTree(t *testing.T) {
	archives := []model.Archive{
		{ID: 1, Name: "docs"},
		{ID: 2, Name: "2024", ParentID: ptr(1)},
		{ID: 3, Name: "2025", ParentID: ptr(1)},
		{ID: 4, Name: "taxes", ParentID: ptr(2)},
		{ID: 5, Name: "media"},
	}

	tree := BuildTree(archives)
	require.Len(t, tree, 2)

	docs := tree[0]
	assert.Equal(t, "docs", docs.Name)
	require.Len(t, docs.Children, 2)
	assert.Equal(t, "2024", docs.Children[0].Name)
	require.Len(t, docs.Children[0].Children, 1)
	assert.Equal(t, "taxes", docs.Children[0].Children[0].Name)

	assert.Equal(t, "media", tree[1].Name)
	assert.Empty(t, tree[1].Children)
}

func TestBuildTreeOmitsOrphans(t *testing.T) {
	// Node 7 points at a parent that isn't in the set. It must be
	// dropped silently, not surface as a root or an error.
	archives := []model.Archive{
		{ID: 1, Name: "docs"},
		{ID: 7, Name: "stray", ParentID: ptr(99)},
	}

	tree := BuildTree(archives)
	require.Len(t, tree, 1)
	assert.Equal(t, "docs", tree[0].Name)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTree(nil))
}

func TestBuildTreeCycleTerminates(t *testing.T) {
	// Two nodes pointing at each other never show up as roots, so the
	// walk simply has nothing to start from. The depth cap guards the
	// pathological self-parent case too.
	archives := []model.Archive{
		{ID: 1, Name: "a", ParentID: ptr(2)},
		{ID: 2, Name: "b", ParentID: ptr(1)},
	}

	assert.Empty(t, BuildTree(archives))
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	d, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, d.AutoMigrate(model.Archive{}))

	return d
}

func TestFullPath(t *testing.T) {
	d := testDB(t)

	root := model.Archive{Name: "docs", OwnerID: "u1", Path: "/docs"}
	require.NoError(t, d.Create(&root).Error)

	child := model.Archive{Name: "2024", OwnerID: "u1", ParentID: &root.ID}
	require.NoError(t, d.Create(&child).Error)

	grandchild := model.Archive{Name: "taxes", OwnerID: "u1", ParentID: &child.ID}
	require.NoError(t, d.Create(&grandchild).Error)

	assert.Equal(t, "/docs", FullPath(d, &root))
	assert.Equal(t, "/docs/2024", FullPath(d, &child))
	assert.Equal(t, "/docs/2024/taxes", FullPath(d, &grandchild))
}

func TestFullPathDanglingParent(t *testing.T) {
	d := testDB(t)

	missing := uint(1234)
	orphan := model.Archive{Name: "stray", OwnerID: "u1", ParentID: &missing}
	require.NoError(t, d.Create(&orphan).Error)

	// A broken ancestor chain degrades to just the node's own name
	assert.Equal(t, "/stray", FullPath(d, &orphan))
}
