package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rtgen/internal/version"
)

const versionTagline = "generics that remember their arguments"

var versionJSON bool

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "emit JSON instead of the one-liner")
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Tagline   string `json:"tagline"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rtgen build fingerprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		commit := strings.TrimSpace(version.GitCommit)
		date := strings.TrimSpace(version.BuildDate)
		out := cmd.OutOrStdout()

		if versionJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(versionPayload{
				Tool:      "rtgen",
				Version:   v,
				Tagline:   versionTagline,
				GitCommit: commit,
				BuildDate: date,
			})
		}

		fmt.Fprintf(out, "rtgen %s — %s\n", v, versionTagline)
		if commit != "" {
			fmt.Fprintf(out, "commit: %s\n", commit)
		}
		if date != "" {
			fmt.Fprintf(out, "built:  %s\n", date)
		}
		return nil
	},
}
