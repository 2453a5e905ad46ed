package main

import "github.com/mikestreety/ai-code-review/internal/config"

// ReviewOpts holds all resolved configuration and runtime flags needed to
// execute a review. It bundles config.ResolvedConfig (from flag/env/file
// resolution) with CLI-only flags that don't participate in config resolution.
type ReviewOpts struct {
	config.ResolvedConfig

	// CLI-only flags (not part of config resolution)
	MR              int // Merge request IID (0 = local mode)
	DryRun          bool
	Verbose         bool
	UseRefFile      bool
	ExcludePatterns []string
	WorkDir         string // Repo path (empty = current directory)
}
