package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
)

var checkJSON bool

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit JSON instead of the verdict line")
}

var checkCmd = &cobra.Command{
	Use:   "check <sub> <cls>",
	Short: "Check the variance-aware subtype relation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := loadHierarchy(cmd)
		if err != nil {
			return err
		}
		defer cleanup()
		cmd.SilenceUsage = true

		sub, err := h.Scope.ParseHandle(args[0])
		if err != nil {
			return err
		}
		cls, err := h.Scope.ParseHandle(args[1])
		if err != nil {
			return err
		}
		ok, err := generics.TypeCheck(sub, cls)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if checkJSON {
			if err := exprfmt.WriteJSON(out, exprfmt.VerdictOutput{
				Sub:     sub.String(),
				Cls:     cls.String(),
				Subtype: ok,
			}); err != nil {
				return err
			}
		} else {
			exprfmt.Verdict(out, sub.String(), cls.String(), ok, formatOpts(cmd))
		}
		if !ok {
			cmd.SilenceErrors = true
			return fmt.Errorf("%s is not a subtype of %s", sub, cls)
		}
		return nil
	},
}
