package main

import (
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nguyentantai21042004/gif-flow/internal/render"
)

// artifactTable renders one row per artifact with its on-disk size and a
// footer totalling the sizes. Files that cannot be stat'ed show "-".
func artifactTable(artifacts []render.Artifact) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	tw.AppendHeader(table.Row{"Segment", "File", "Size"})

	var total uint64
	for _, art := range artifacts {
		size := "-"
		if info, err := os.Stat(art.ImagePath); err == nil {
			total += uint64(info.Size())
			size = humanize.Bytes(uint64(info.Size()))
		}
		tw.AppendRow(table.Row{art.SegmentIndex, filepath.Base(art.ImagePath), size})
	}
	tw.AppendFooter(table.Row{"", humanize.Comma(int64(len(artifacts))) + " files", humanize.Bytes(total)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
