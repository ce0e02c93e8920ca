package main

import (
	"bucket-chan/commands"
	"io"

	"github.com/olekukonko/tablewriter"
)

func printCommands(w io.Writer, registry *commands.Registry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Command"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, name := range registry.Names() {
		table.Append([]string{name})
	}
	table.Render()
}
