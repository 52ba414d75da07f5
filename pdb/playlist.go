package pdb

import (
	"io"
	"sort"

	"github.com/wilhasse/go-rekordpdb/format"
)

// PlaylistNode is one reconstructed node of the playlist hierarchy.
type PlaylistNode struct {
	ID        uint32
	Name      string
	IsFolder  bool
	SortOrder uint32
	Children  []*PlaylistNode
}

// BuildPlaylistTree reconstructs the playlist hierarchy from flat
// parent-linked rows. Top-level nodes are the children of the virtual root
// id 0; siblings are ordered by their sort order. The parent index built
// here is per-invocation derived state, nothing is cached between calls.
// Rows whose parent chain never reaches the root (orphans or cycles) are
// dropped.
func BuildPlaylistTree(rows []*PlaylistTreeNode) []*PlaylistNode {
	byParent := make(map[uint32][]*PlaylistTreeNode)
	for _, row := range rows {
		byParent[row.ParentID] = append(byParent[row.ParentID], row)
	}
	seen := make(map[uint32]bool)
	var build func(parent uint32) []*PlaylistNode
	build = func(parent uint32) []*PlaylistNode {
		children := byParent[parent]
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].SortOrder < children[j].SortOrder
		})
		out := make([]*PlaylistNode, 0, len(children))
		for _, row := range children {
			if seen[row.ID] {
				continue
			}
			seen[row.ID] = true
			node := &PlaylistNode{
				ID:        row.ID,
				Name:      row.Name.Value(),
				IsFolder:  row.IsFolder(),
				SortOrder: row.SortOrder,
			}
			node.Children = build(row.ID)
			out = append(out, node)
		}
		return out
	}
	return build(0)
}

// ReadPlaylistTree walks every playlist-tree table of the file and returns
// the reconstructed hierarchy.
func ReadPlaylistTree(rd *Reader) ([]*PlaylistNode, error) {
	var rows []*PlaylistTreeNode
	for _, t := range rd.Header.TablesOfType(format.PageTypePlaylistTree) {
		it := rd.Pages(t)
		for {
			page, err := it.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
			for gi := range page.RowGroups {
				for _, row := range page.RowGroups[gi].PresentRows() {
					node, ok := row.(*PlaylistTreeNode)
					if !ok {
						return nil, format.Errf("page %d: non-playlist row in playlist table", page.Index)
					}
					rows = append(rows, node)
				}
			}
		}
	}
	return BuildPlaylistTree(rows), nil
}
