package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
	"rtgen/internal/manifest"
)

const noManifestMessage = "no rtgen.toml found\nplease specify the manifest explicitly, e.g.:\n  rtgen parents --manifest path/to/rtgen.toml"

// loadHierarchy locates the manifest, arms its classes in a fresh
// universe and returns the result together with a tracer cleanup.
func loadHierarchy(cmd *cobra.Command) (*manifest.Hierarchy, func(), error) {
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, nil, err
	}

	path, err := cmd.Root().PersistentFlags().GetString("manifest")
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if path == "" {
		found, ok, ferr := manifest.Find(".")
		if ferr != nil {
			cleanup()
			return nil, nil, ferr
		}
		if !ok {
			cleanup()
			return nil, nil, errors.New(noManifestMessage)
		}
		path = found
	}

	m, err := manifest.Load(path)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	u := generics.NewUniverse(generics.WithTracer(tracer))
	h, err := m.Build(u)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, cleanup, nil
}

func formatOpts(cmd *cobra.Command) exprfmt.Opts {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	enabled := false
	switch mode {
	case "on":
		enabled = true
	case "auto":
		enabled = isTerminal(os.Stdout)
	}
	return exprfmt.Opts{Color: enabled}
}
