package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"conform/internal/cerrors"
	"conform/internal/language"
	"conform/internal/policy"
	"conform/internal/textutil"
)

func newInfoCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "info <source>",
		Short: "Report which streams are compatible and which need conversion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := checkTools(cfg); err != nil {
				return err
			}

			source := args[0]
			insp, err := inspectSource(cmd.Context(), cfg, source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				if err := json.NewEncoder(out).Encode(infoView(source, insp)); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
			} else {
				printInfoReport(out, source, insp)
			}

			if insp.report.AllCopy() {
				return nil
			}
			return cerrors.ErrConversionNeeded
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

func printInfoReport(out io.Writer, source string, insp *inspection) {
	fmt.Fprintf(out, "%s\n", textutil.DisplayTitle(source))
	if info, err := os.Stat(source); err == nil {
		fmt.Fprintf(out, "Size: %s\n", humanize.IBytes(uint64(info.Size())))
	}

	rows := [][]string{
		{"container", insp.facts.Container, "", insp.report.Container.String()},
		{
			"resolution",
			fmt.Sprintf("%dx%d", insp.facts.Video.Width, insp.facts.Video.Height),
			"",
			insp.report.Resolution.String(),
		},
		{"video", insp.facts.Video.Codec, "", insp.report.Video.String()},
	}
	for i, stream := range insp.facts.Audio {
		rows = append(rows, []string{
			fmt.Sprintf("audio #%d", i),
			stream.Codec,
			language.DisplayName(stream.Language),
			insp.report.Audio[i].String(),
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Stream", "Value", "Language", "Decision"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
	))

	if insp.report.AllCopy() {
		fmt.Fprintln(out, "Fully compatible: no conversion needed")
	} else {
		fmt.Fprintln(out, "Conversion needed")
	}
}

type streamView struct {
	Stream   string `json:"stream"`
	Value    string `json:"value"`
	Language string `json:"language,omitempty"`
	Decision string `json:"decision"`
}

type reportView struct {
	Source  string       `json:"source"`
	AllCopy bool         `json:"fully_compatible"`
	Streams []streamView `json:"streams"`
}

func infoView(source string, insp *inspection) reportView {
	view := reportView{
		Source:  source,
		AllCopy: insp.report.AllCopy(),
		Streams: []streamView{
			{Stream: "container", Value: insp.facts.Container, Decision: decisionLabel(insp.report.Container)},
			{
				Stream:   "resolution",
				Value:    fmt.Sprintf("%dx%d", insp.facts.Video.Width, insp.facts.Video.Height),
				Decision: decisionLabel(insp.report.Resolution),
			},
			{Stream: "video", Value: insp.facts.Video.Codec, Decision: decisionLabel(insp.report.Video)},
		},
	}
	for i, stream := range insp.facts.Audio {
		view.Streams = append(view.Streams, streamView{
			Stream:   fmt.Sprintf("audio:%d", i),
			Value:    stream.Codec,
			Language: stream.Language,
			Decision: decisionLabel(insp.report.Audio[i]),
		})
	}
	return view
}

func decisionLabel(d policy.Decision) string {
	if d.IsCopy() {
		return "copy"
	}
	return d.Target()
}
