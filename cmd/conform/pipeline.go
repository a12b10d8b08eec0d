package main

import (
	"context"

	"conform/internal/cerrors"
	"conform/internal/config"
	"conform/internal/deps"
	"conform/internal/fileutil"
	"conform/internal/media/ffprobe"
	"conform/internal/plan"
	"conform/internal/policy"
	"conform/internal/report"
)

// inspection bundles everything derived from probing one source file.
type inspection struct {
	facts  ffprobe.Facts
	policy *policy.Policy
	report report.Report
}

// inspectSource runs the probe-then-decide half of the pipeline shared by
// info, dry, and start.
func inspectSource(ctx context.Context, cfg *config.Config, source string) (*inspection, error) {
	if err := fileutil.CheckSource(source); err != nil {
		return nil, err
	}

	pol, err := policy.New(cfg.Policy)
	if err != nil {
		return nil, err
	}

	facts, err := ffprobe.Inspect(ctx, cfg.Tools.FFprobe, source)
	if err != nil {
		return nil, err
	}

	return &inspection{
		facts:  facts,
		policy: pol,
		report: report.Build(pol, facts),
	}, nil
}

// buildPlan derives the encode plan for an inspected source.
func (i *inspection) buildPlan() (plan.Plan, error) {
	return plan.Build(i.policy, i.facts, i.report)
}

// targetExtension is the container extension of the output file: the source
// extension when the container is compatible, otherwise the conversion
// target.
func (i *inspection) targetExtension() string {
	if i.report.Container.IsCopy() {
		return i.facts.Container
	}
	return i.report.Container.Target()
}

// checkTools fails with a missing-tool error when a required external binary
// cannot be resolved.
func checkTools(cfg *config.Config) error {
	statuses := deps.CheckBinaries(deps.Required(cfg.Tools))
	if missing := deps.FirstMissing(statuses); missing != nil {
		return cerrors.Wrap(cerrors.ErrMissingTool, missing.Detail, nil)
	}
	return nil
}
