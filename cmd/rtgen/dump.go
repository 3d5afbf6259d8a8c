package main

import (
	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
	"rtgen/internal/manifest"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the armed hierarchy as JSON",
	Long: `Emits every class from the manifest with its parameters, declared
parents and any-filled linearization, in declaration order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		payload, err := hierarchyOutputs(h)
		if err != nil {
			return err
		}
		return exprfmt.WriteJSON(cmd.OutOrStdout(), payload)
	},
}

// hierarchyOutputs renders each class of an armed hierarchy.
func hierarchyOutputs(h *manifest.Hierarchy) ([]exprfmt.ClassOutput, error) {
	out := make([]exprfmt.ClassOutput, 0, len(h.Classes))
	for _, name := range h.Classes {
		origin, _ := h.Origin(name)
		entry := exprfmt.ClassOutput{
			Class:   name,
			Parents: exprfmt.Strings(generics.ParentsOf(origin)),
		}
		for _, p := range origin.Params() {
			entry.Params = append(entry.Params, p.String())
		}
		mro, err := generics.MROOf(origin)
		if err != nil {
			return nil, err
		}
		entry.Linearization = exprfmt.Strings(mro)
		out = append(out, entry)
	}
	return out, nil
}
