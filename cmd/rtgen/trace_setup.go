package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rtgen/internal/trace"
)

// setupTracing inspects trace-related flags and initializes the tracer.
// It returns the tracer, a cleanup function and an error.
func setupTracing(cmd *cobra.Command) (trace.Tracer, func(), error) {
	root := cmd.Root()

	output, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, nil, err
	}
	// Путь без уровня означает полную трассировку в этот файл.
	if level == trace.LevelOff && output != "" {
		level = trace.LevelQuery
	}
	if level == trace.LevelOff {
		return trace.Nop, func() {}, nil
	}

	tracer, err := trace.New(trace.Config{Level: level, OutputPath: output})
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = tracer.Flush()
		_ = tracer.Close()
	}
	return tracer, cleanup, nil
}
