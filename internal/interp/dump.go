package interp

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"tacgen/internal/object"
)

// Dump writes the variables of env as a table, sorted by name.
func Dump(w io.Writer, env *object.Environment) error {
	tw := table.NewWriter()
	tw.SetTitle("Variables")
	tw.AppendHeader(table.Row{"Name", "Type", "Value"})
	for _, name := range env.Names() {
		val, _ := env.Get(name)
		tw.AppendRow(table.Row{name, val.Type(), val.Inspect()})
	}
	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}
