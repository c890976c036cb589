// Package service holds domain logic shared between handlers
package service

import (
	"artvault/archive-api/model"

	"gorm.io/gorm"
)

// Caps ancestor walks so a cyclic parent reference in the database can
// never hang a request
const maxTreeDepth = 64

type TreeNode struct {
	ID       uint        `json:"id"`
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children"`
}

// BuildTree reassembles a user's flat archive list into a forest. A
// single pass builds a parent to children index, then the forest is
// walked down from the roots. Nodes whose parent is missing from the
// list are simply omitted, dangling references are not an error here.
func BuildTree(archives []model.Archive) []*TreeNode {
	children := make(map[uint][]model.Archive, len(archives))
	var roots []model.Archive

	for _, a := range archives {
		if a.ParentID == nil {
			roots = append(roots, a)
			continue
		}

		children[*a.ParentID] = append(children[*a.ParentID], a)
	}

	var walk func(a model.Archive, depth int) *TreeNode
	walk = func(a model.Archive, depth int) *TreeNode {
		node := &TreeNode{
			ID:       a.ID,
			Name:     a.Name,
			Children: []*TreeNode{},
		}

		if depth >= maxTreeDepth {
			return node
		}

		for _, child := range children[a.ID] {
			node.Children = append(node.Children, walk(child, depth+1))
		}

		return node
	}

	tree := make([]*TreeNode, 0, len(roots))
	for _, root := range roots {
		tree = append(tree, walk(root, 0))
	}

	return tree
}

// FullPath computes an archive's materialized path by walking its
// ancestor chain. A broken chain degrades to "/"+name instead of
// failing, a dangling parent reference must never make the archive
// unreachable.
func FullPath(d *gorm.DB, a *model.Archive) string {
	path := "/" + a.Name

	parentID := a.ParentID
	for depth := 0; parentID != nil && depth < maxTreeDepth; depth++ {
		var parent model.Archive

		// A missing ancestor (or a read error) is the soft failure case
		// described above
		if err := d.Where("id = ?", *parentID).First(&parent).Error; err != nil {
			return "/" + a.Name
		}

		path = "/" + parent.Name + path
		parentID = parent.ParentID
	}

	return path
}
