package coverage

import (
	"fmt"
	"strings"

	"github.com/LambdaTest/covgate/pkg/core"
	"github.com/LambdaTest/covgate/pkg/errs"
	"github.com/LambdaTest/covgate/pkg/global"
	"github.com/LambdaTest/covgate/pkg/utils"
)

// epsilon absorbs float rounding so that coverage equal to the threshold passes.
const epsilon = 1e-9

// ErrorNotePrefix starts the note posted when the check could not run.
const ErrorNotePrefix = ":warning: coverage check not run due to error: "

// Summarize renders filtered and decides the gate on the unfiltered aggregate of original.
// A nil threshold always passes.
func Summarize(filtered, original *core.CoverageReport, threshold *int) *core.Summary {
	summary := &core.Summary{Passed: true, Evaluated: true}
	if threshold != nil && original.Coverage*100+epsilon < float64(*threshold) {
		summary.Passed = false
		summary.Failure = errs.ThresholdNotMet(*threshold).Error()
	}
	summary.Markdown = render(filtered, original, threshold, summary.Failure)
	return summary
}

// ErrorSummary is the single note produced when the report could not be obtained.
// The threshold is not evaluated.
func ErrorSummary(err error) *core.Summary {
	return &core.Summary{Markdown: ErrorNotePrefix + err.Error() + "\n"}
}

func render(filtered, original *core.CoverageReport, threshold *int, failure string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Current coverage is `%s`\n", utils.Percent(original.Coverage))
	if threshold != nil {
		fmt.Fprintf(&b, "Minimum required coverage is `%d%%`.\n", *threshold)
	}
	for _, t := range filtered.Targets {
		b.WriteString("\n")
		renderTarget(&b, t)
	}
	if failure != "" {
		fmt.Fprintf(&b, "\n> :no_entry_sign: %s\n", failure)
	}
	return b.String()
}

func renderTarget(b *strings.Builder, t core.Target) {
	files := "files"
	if len(t.Files) == 1 {
		files = "file"
	}
	fmt.Fprintf(b, "### %s: `%s` (%d changed %s)\n", t.Name, utils.Percent(t.Coverage), len(t.Files), files)
	if len(t.Files) == 0 {
		b.WriteString("no changed files in this target\n")
		return
	}
	b.WriteString("Files changed | Coverage | -\n--- | --- | ---\n")
	for _, f := range t.Files {
		fmt.Fprintf(b, "%s | `%s` | %s\n", f.Name, utils.Percent(f.Coverage), statusEmoji(f.Coverage))
	}
}

func statusEmoji(ratio float64) string {
	switch {
	case ratio >= global.FileCoverageGood:
		return "✅"
	case ratio >= global.FileCoverageWarning:
		return "⚠️"
	default:
		return "🚫"
	}
}
