package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/ui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Browse the armed hierarchy interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return errors.New("ui requires an interactive terminal")
		}
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		entries := make([]ui.ClassEntry, 0, len(h.Classes))
		for _, name := range h.Classes {
			origin, _ := h.Origin(name)
			entry := ui.ClassEntry{Name: name}
			for _, p := range origin.Params() {
				entry.Params = append(entry.Params, p.String())
			}
			for _, parent := range generics.ParentsOf(origin) {
				entry.Parents = append(entry.Parents, parent.String())
			}
			mro, err := generics.MROOf(origin)
			if err != nil {
				entry.Problem = err.Error()
			} else {
				for _, step := range mro {
					entry.Linearization = append(entry.Linearization, step.String())
				}
			}
			entries = append(entries, entry)
		}
		return ui.Run("rtgen hierarchy", entries)
	},
}
