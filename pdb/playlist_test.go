package pdb

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-rekordpdb/format"
)

func treeRow(id, parent, sortOrder uint32, folder bool, name string) *PlaylistTreeNode {
	raw := uint32(0)
	if folder {
		raw = 1
	}
	n, err := parseDeviceString(shortStr(name+"\x00"), 0)
	if err != nil {
		panic(err)
	}
	return &PlaylistTreeNode{ID: id, ParentID: parent, SortOrder: sortOrder, RawIsFolder: raw, Name: n}
}

func TestBuildPlaylistTree(t *testing.T) {
	rows := []*PlaylistTreeNode{
		treeRow(3, 1, 2, false, "Peak Time"),
		treeRow(1, 0, 1, true, "Sets"),
		treeRow(2, 1, 1, false, "Warmup"),
		treeRow(4, 0, 2, false, "Loose Tracks"),
	}
	roots := BuildPlaylistTree(rows)
	require.Len(t, roots, 2)

	sets := roots[0]
	assert.Equal(t, "Sets", sets.Name)
	assert.True(t, sets.IsFolder)
	require.Len(t, sets.Children, 2)
	assert.Equal(t, "Warmup", sets.Children[0].Name)
	assert.Equal(t, "Peak Time", sets.Children[1].Name)

	assert.Equal(t, "Loose Tracks", roots[1].Name)
	assert.False(t, roots[1].IsFolder)
	assert.Empty(t, roots[1].Children)
}

func TestBuildPlaylistTreeDropsOrphansAndCycles(t *testing.T) {
	rows := []*PlaylistTreeNode{
		treeRow(1, 0, 1, false, "Reachable"),
		treeRow(7, 99, 1, false, "Orphan"), // parent never appears
		treeRow(8, 9, 1, true, "CycleA"),   // 8 <-> 9
		treeRow(9, 8, 1, true, "CycleB"),
	}
	roots := BuildPlaylistTree(rows)
	require.Len(t, roots, 1)
	assert.Equal(t, "Reachable", roots[0].Name)
}

func TestReadPlaylistTree(t *testing.T) {
	table := Table{Type: format.PageTypePlaylistTree, FirstPage: 1, LastPage: 2}
	file := buildFile(testPageSize, []Table{table}, map[uint32][]byte{
		1: buildPage(testPageSize, format.PageTypePlaylistTree, 1, 2, []rowSpec{
			present(playlistTreeRow(1, 0, 1, 1, "Folder")),
		}),
		2: buildPage(testPageSize, format.PageTypePlaylistTree, 2, 0, []rowSpec{
			present(playlistTreeRow(2, 1, 1, 0, "Inside")),
		}),
	})

	rd, err := NewReader(bytes.NewReader(file))
	require.NoError(t, err)
	roots, err := ReadPlaylistTree(rd)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "Folder", roots[0].Name)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, "Inside", roots[0].Children[0].Name)
}
