package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VendoraHQ/Vendora/app/models"
)

func TestBuildCategoryTree(t *testing.T) {
	rootA := uint(1)
	rootB := uint(2)
	cats := []models.Category{
		{ID: 1, Name: "Machinery", Slug: "machinery"},
		{ID: 2, Name: "Chemicals", Slug: "chemicals"},
		{ID: 3, Name: "Pumps", Slug: "pumps", ParentID: &rootA},
		{ID: 4, Name: "Compressors", Slug: "compressors", ParentID: &rootA},
		{ID: 5, Name: "Solvents", Slug: "solvents", ParentID: &rootB},
	}

	tree := buildCategoryTree(cats)

	require.Len(t, tree, 2)
	assert.Equal(t, "Machinery", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Pumps", tree[0].Children[0].Name)
	require.Len(t, tree[1].Children, 1)
	assert.Equal(t, "Solvents", tree[1].Children[0].Name)
}

func TestBuildCategoryTreeDropsOrphans(t *testing.T) {
	missingParent := uint(99)
	cats := []models.Category{
		{ID: 1, Name: "Machinery", Slug: "machinery"},
		{ID: 3, Name: "Orphan", Slug: "orphan", ParentID: &missingParent},
	}

	tree := buildCategoryTree(cats)

	require.Len(t, tree, 1)
	assert.Empty(t, tree[0].Children)
}

func TestBuildCategoryTreeEmpty(t *testing.T) {
	assert.Empty(t, buildCategoryTree(nil))
}
