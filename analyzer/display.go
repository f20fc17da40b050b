package analyzer

import (
	"fmt"
	"io"
	"strings"
)

// DisplayReports writes a summary of every report to w and returns the
// number of failed files
func DisplayReports(w io.Writer, reports []*FileReport, verbose bool) int {
	if len(reports) == 0 {
		fmt.Fprintln(w, "  No scripts found to shrink")
		return 0
	}

	failed := 0
	inputBytes, outputBytes := 0, 0

	for _, report := range reports {
		if report.Failed() {
			failed++
		}
		if report.Result != nil {
			inputBytes += report.Result.InputBytes
			outputBytes += report.Result.OutputBytes
		}
		displayReport(w, report, verbose)
	}

	if len(reports) > 1 {
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprintf(w, "Shrunk %d of %d scripts, %s -> %s\n",
			len(reports)-failed, len(reports), formatBytes(inputBytes), formatBytes(outputBytes))
	}

	return failed
}

func displayReport(w io.Writer, report *FileReport, verbose bool) {
	if report.Err != nil {
		fmt.Fprintf(w, "❌ %s\n   %v\n", report.Path, report.Err)
		return
	}

	result := report.Result
	mark := "✅"
	if report.Failed() {
		mark = "❌"
	}

	destination := report.OutputPath
	if destination == "" {
		destination = "stdout"
	}

	if !result.LibraryFound {
		fmt.Fprintf(w, "%s %s -> %s (no library block)\n", mark, report.Path, destination)
	} else {
		fmt.Fprintf(w, "%s %s -> %s\n", mark, report.Path, destination)
		fmt.Fprintf(w, "   kept %d, removed %d, %s -> %s (%s)\n",
			len(result.Required), len(result.Removed),
			formatBytes(result.InputBytes), formatBytes(result.OutputBytes),
			percentSaved(result.InputBytes, result.OutputBytes))
	}

	if verbose {
		if len(result.Removed) > 0 {
			fmt.Fprintf(w, "   removed: %s\n", strings.Join(result.Removed, ", "))
		}
		if len(result.Unresolved) > 0 {
			fmt.Fprintf(w, "   not in library: %s\n", strings.Join(result.Unresolved, ", "))
		}
	}

	for _, issue := range report.Issues {
		fmt.Fprintf(w, "   syntax: %s\n", issue)
	}
	if len(report.MissingMethods) > 0 {
		fmt.Fprintf(w, "   missing from class: %s\n", strings.Join(report.MissingMethods, ", "))
	}
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func percentSaved(in, out int) string {
	if in == 0 {
		return "0% smaller"
	}
	return fmt.Sprintf("%.0f%% smaller", 100*float64(in-out)/float64(in))
}
