// Command go-rekordpdb inspects and re-exports the database and analysis
// files found on Pioneer DJ device exports.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/wilhasse/go-rekordpdb/anlz"
	"github.com/wilhasse/go-rekordpdb/pdb"
	"github.com/wilhasse/go-rekordpdb/setting"
)

var dump = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

var cli struct {
	ListPlaylists listPlaylistsCmd `cmd:"" name:"list-playlists" help:"List the playlist tree from a database (.PDB) file."`
	DumpPDB       dumpPDBCmd       `cmd:"" name:"dump-pdb" help:"Parse and dump a database (.PDB) file."`
	DumpANLZ      dumpANLZCmd      `cmd:"" name:"dump-anlz" help:"Parse and dump an analysis (ANLZXXXX.DAT) file."`
	DumpSetting   dumpSettingCmd   `cmd:"" name:"dump-setting" help:"Parse and dump a preference (*SETTING.DAT) file."`
	ReexportPDB   reexportPDBCmd   `cmd:"" name:"reexport-pdb" help:"Decode a database file and write the re-encoded bytes elsewhere."`
}

type listPlaylistsCmd struct {
	Path string `arg:"" name:"pdb-file" help:"File to parse." type:"existingfile"`
}

func (c *listPlaylistsCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := pdb.NewReader(f)
	if err != nil {
		return err
	}
	tree, err := pdb.ReadPlaylistTree(rd)
	if err != nil {
		return err
	}
	printPlaylists(tree, 0)
	return nil
}

func printPlaylists(nodes []*pdb.PlaylistNode, level int) {
	for _, node := range nodes {
		marker := "\U0001f5ce" // document
		if node.IsFolder {
			marker = "\U0001f5c0" // folder
		}
		fmt.Printf("%s%s %s\n", strings.Repeat("    ", level), marker, node.Name)
		printPlaylists(node.Children, level+1)
	}
}

type dumpPDBCmd struct {
	Path string `arg:"" name:"pdb-file" help:"File to parse." type:"existingfile"`
}

func (c *dumpPDBCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	rd, err := pdb.NewReader(f)
	if err != nil {
		return err
	}
	h := rd.Header
	fmt.Printf("Header: page_size=%d tables=%d next_unused_page=%d sequence=%d\n",
		h.PageSize, len(h.Tables), h.NextUnusedPage, h.Sequence)

	for i, table := range h.Tables {
		fmt.Printf("Table %d: %s pages %d..%d\n", i, table.Type, table.FirstPage, table.LastPage)
		it := rd.Pages(table)
		for {
			page, err := it.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return err
			}
			fmt.Printf("  Page %d: type=%s next=%d rows=%d free=%d used=%d flags=%#02x\n",
				page.Index, page.Type, page.NextPage, page.NumRows(),
				page.FreeSize, page.UsedSize, page.PageFlags)
			if page.RowGroups == nil {
				fmt.Printf("    (no known row layout)\n")
				continue
			}
			for gi := range page.RowGroups {
				g := &page.RowGroups[gi]
				fmt.Printf("    RowGroup %d: slots=%d present=%#04x\n", gi, g.NumSlots(), g.PresentFlags)
				for _, row := range g.PresentRows() {
					fmt.Print(indent(dump.Sdump(row), "      "))
				}
			}
		}
	}
	return nil
}

type dumpANLZCmd struct {
	Path string `arg:"" name:"anlz-file" help:"File to parse." type:"existingfile"`
}

func (c *dumpANLZCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	af, err := anlz.Read(f)
	if err != nil {
		return err
	}
	fmt.Printf("ANLZ: header_len=%d file_len=%d sections=%d\n", af.HeaderLen, af.FileLen, len(af.Sections))
	for _, sec := range af.Sections {
		fmt.Printf("  %s: header_len=%d total_len=%d\n", sec.Tag, sec.HeaderLen, sec.TotalLen)
		if sec.Detail != nil {
			fmt.Print(indent(dump.Sdump(sec.Detail), "    "))
		}
	}
	return nil
}

type dumpSettingCmd struct {
	Path string `arg:"" name:"setting-file" help:"File to parse." type:"existingfile"`
}

func (c *dumpSettingCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := setting.Read(f)
	if err != nil {
		return err
	}
	dump.Dump(s)
	fmt.Printf("payload checksum: stored=%#04x computed=%#04x\n", s.Checksum, s.PayloadChecksum())
	return nil
}

type reexportPDBCmd struct {
	In  string `arg:"" name:"pdb-in-file" help:"File to parse." type:"existingfile"`
	Out string `arg:"" name:"pdb-out-file" help:"File to write."`
}

func (c *reexportPDBCmd) Run() error {
	in, err := os.Open(c.In)
	if err != nil {
		return err
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.Create(c.Out)
	if err != nil {
		return err
	}
	if err := pdb.Reexport(in, st.Size(), out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("go-rekordpdb"),
		kong.Description("Inspect and losslessly re-export Pioneer DJ device export databases."),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
