package preflight

import (
	"conform/internal/config"
	"conform/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run executes the readiness checks for the given config: external tool
// presence, write access to the target directory, and available disk space.
// targetDir may be empty, in which case the working directory is checked.
func Run(cfg *config.Config, targetDir string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	for _, status := range deps.CheckBinaries(deps.Required(cfg.Tools)) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Command}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}

	if targetDir == "" {
		targetDir = "."
	}
	results = append(results, CheckDirectoryAccess("Destination directory", targetDir))
	results = append(results, CheckFreeSpace("Free space", targetDir))
	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
