package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rtgen/generics"
	"rtgen/internal/exprfmt"
	"rtgen/internal/manifest"
	"rtgen/internal/snapshot"
)

var (
	vetJobs     int
	vetNoCache  bool
	vetCacheDir string
)

func init() {
	vetCmd.Flags().IntVar(&vetJobs, "jobs", 0, "parallel vet workers (0 = GOMAXPROCS)")
	vetCmd.Flags().BoolVar(&vetNoCache, "no-cache", false, "ignore and bypass the vet result cache")
	vetCmd.Flags().StringVar(&vetCacheDir, "cache-dir", "", "override the cache directory")
}

var vetCmd = &cobra.Command{
	Use:   "vet [path...]",
	Short: "Vet hierarchy manifests for linearization problems",
	Long: `Arms every manifest found under the given paths (default: the current
directory) and reports classes whose hierarchies fail to linearize.
Unchanged manifests are answered from the on-disk result cache.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		if len(args) == 0 {
			args = []string{"."}
		}
		files, err := listManifests(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return errors.New("no rtgen.toml manifests found")
		}

		store, err := openStore()
		if err != nil {
			return err
		}

		jobs := vetJobs
		if jobs <= 0 {
			jobs = runtime.GOMAXPROCS(0)
		}

		// Результаты по индексам, мьютекс не нужен
		results := make([]*snapshot.Payload, len(files))
		g, gctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(min(jobs, len(files)))
		for i, path := range files {
			i, path := i, path
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				payload, err := vetManifest(path, store)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results[i] = payload
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		opts := formatOpts(cmd)
		out := cmd.OutOrStdout()
		broken := 0
		for i, payload := range results {
			if len(payload.Problems) == 0 {
				if !quiet {
					fmt.Fprintf(out, "%s: ok (%d classes)\n", files[i], len(payload.Classes))
				}
				continue
			}
			broken++
			fmt.Fprintf(out, "%s:\n", files[i])
			exprfmt.Problems(out, payload.Problems, opts)
		}
		if broken > 0 {
			cmd.SilenceErrors = true
			return fmt.Errorf("%d of %d manifests have problems", broken, len(files))
		}
		return nil
	},
}

// listManifests collects rtgen.toml files under the given paths, sorted
// for deterministic order.
func listManifests(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}
	for _, p := range paths {
		if strings.HasSuffix(p, ".toml") {
			add(p)
			continue
		}
		err := filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Base(path) == manifest.FileName {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func openStore() (*snapshot.Store, error) {
	if vetNoCache {
		return nil, nil
	}
	if vetCacheDir != "" {
		return snapshot.OpenAt(vetCacheDir)
	}
	return snapshot.Open("rtgen")
}

// vetManifest arms one manifest and computes every class's ancestry,
// reading and refreshing the result cache along the way. A nil store
// disables caching.
func vetManifest(path string, store *snapshot.Store) (*snapshot.Payload, error) {
	key, err := snapshot.DigestFile(path)
	if err != nil {
		return nil, err
	}
	var cached snapshot.Payload
	if hit, err := store.Get(key, &cached); err == nil && hit {
		return &cached, nil
	}

	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	payload := &snapshot.Payload{
		ManifestPath:   path,
		VettedAt:       time.Now().UTC(),
		Parents:        make(map[string][]string),
		Linearizations: make(map[string][]string),
	}
	h, err := m.Build(generics.NewUniverse())
	if err != nil {
		// Проблема сборки относится к манифесту целиком.
		payload.Problems = append(payload.Problems, err.Error())
		return payload, nil
	}
	payload.Classes = h.Classes
	for _, name := range h.Classes {
		origin, _ := h.Origin(name)
		payload.Parents[name] = exprfmt.Strings(generics.ParentsOf(origin))
		mro, err := generics.MROOf(origin)
		if err != nil {
			payload.Problems = append(payload.Problems, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		payload.Linearizations[name] = exprfmt.Strings(mro)
	}

	if err := store.Put(key, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
