package main

import (
	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
	"rtgen/internal/manifest"
)

// mroTarget parses a linearization target. A bare class name resolves to
// its any-filled alias so the chain matches what dump emits for the same
// class.
func mroTarget(h *manifest.Hierarchy, text string) (*generics.Handle, error) {
	handle, err := h.Scope.ParseHandle(text)
	if err != nil {
		return nil, err
	}
	if !handle.Parametrized() {
		if alias, ok := generics.AliasOf(handle.Origin()); ok {
			return alias, nil
		}
	}
	return handle, nil
}

var (
	mroJSON  bool
	mroWidth int
)

func init() {
	mroCmd.Flags().BoolVar(&mroJSON, "json", false, "emit JSON instead of the chain")
	mroCmd.Flags().IntVar(&mroWidth, "width", 100, "wrap the chain at this width (0 = no wrapping)")
}

var mroCmd = &cobra.Command{
	Use:   "mro <expr>...",
	Short: "Linearize a class or parametrization",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		opts := formatOpts(cmd)
		opts.Width = mroWidth
		out := cmd.OutOrStdout()

		var payload []exprfmt.ClassOutput
		for _, text := range args {
			handle, err := mroTarget(h, text)
			if err != nil {
				return err
			}
			mro, err := generics.MROOf(handle)
			if err != nil {
				return err
			}
			names := exprfmt.Strings(mro)
			if mroJSON {
				payload = append(payload, exprfmt.ClassOutput{
					Class:         handle.String(),
					Linearization: names,
				})
				continue
			}
			exprfmt.Chain(out, names, opts)
		}
		if mroJSON {
			return exprfmt.WriteJSON(out, payload)
		}
		return nil
	},
}
