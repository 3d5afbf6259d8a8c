package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rtgen/generics"
)

var paramsCmd = &cobra.Command{
	Use:   "params <expr>",
	Short: "Show the parameter-to-argument mapping of a parametrization",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		handle, err := h.Scope.ParseHandle(args[0])
		if err != nil {
			return err
		}
		mapping := generics.ParametrizationOf(handle)
		out := cmd.OutOrStdout()
		if mapping.Len() == 0 {
			fmt.Fprintf(out, "%s: no resolved parameters\n", handle)
			return nil
		}
		for _, p := range mapping.Params() {
			value, ok := mapping.Get(p)
			if !ok {
				continue
			}
			fmt.Fprintf(out, "%s = %s\n", p, value)
		}
		return nil
	},
}
