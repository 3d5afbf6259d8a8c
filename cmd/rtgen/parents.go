package main

import (
	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
)

var parentsJSON bool

func init() {
	parentsCmd.Flags().BoolVar(&parentsJSON, "json", false, "emit JSON instead of the table")
}

var parentsCmd = &cobra.Command{
	Use:   "parents [expr...]",
	Short: "Show direct parents of classes or parametrizations",
	Long: `Without arguments, lists every class from the manifest with its declared
parents verbatim. With expressions such as 'Fred[string]', shows the
parents with arguments substituted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		var rows []exprfmt.ParentRow
		if len(args) == 0 {
			for _, name := range h.Classes {
				origin, _ := h.Origin(name)
				rows = append(rows, exprfmt.ParentRow{
					Class:   name,
					Parents: exprfmt.Strings(generics.ParentsOf(origin)),
				})
			}
		} else {
			for _, text := range args {
				handle, err := h.Scope.ParseHandle(text)
				if err != nil {
					return err
				}
				rows = append(rows, exprfmt.ParentRow{
					Class:   handle.String(),
					Parents: exprfmt.Strings(handle.Parents()),
				})
			}
		}

		out := cmd.OutOrStdout()
		if parentsJSON {
			payload := make([]exprfmt.ClassOutput, len(rows))
			for i, row := range rows {
				payload[i] = exprfmt.ClassOutput{Class: row.Class, Parents: row.Parents}
			}
			return exprfmt.WriteJSON(out, payload)
		}
		exprfmt.ParentsTable(out, rows, formatOpts(cmd))
		return nil
	},
}
