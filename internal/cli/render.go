package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	listcmd "github.com/arthur-debert/annix/pkg/commands/list"
	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/mutate"
	"github.com/arthur-debert/annix/pkg/nix"
	"github.com/arthur-debert/annix/pkg/nixfile"
	"github.com/arthur-debert/annix/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

// searchIndent is the left padding of wrapped search descriptions, and
// searchMargin the right margin kept free of text.
const (
	searchIndent = 2
	searchMargin = 6
)

// RenderError formats a fatal error for stderr. Parse errors carry the
// 1-based line number and the raw line text; both are shown.
func RenderError(err error) string {
	var b strings.Builder
	b.WriteString(style.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
	if number, raw, ok := errors.Line(err); ok {
		b.WriteString("\n")
		b.WriteString(style.MutedStyle.Render(fmt.Sprintf("  line %d: %s", number, raw)))
	}
	return b.String()
}

func printWarnings(warnings []nixfile.Warning) {
	for _, w := range warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, msg)
		}
		fmt.Fprintln(os.Stderr, style.WarningStyle.Render("Warning: "+msg))
	}
}

func printAddReport(report *mutate.AddReport) {
	printWarnings(report.Warnings)
	printNames("Added", style.SuccessStyle, report.Added)
	printNames("Re-enabled", style.SuccessStyle, report.Reenabled)
	printNames("Already installed", style.MutedStyle, report.AlreadyInstalled)
}

func printRemoveReport(report *mutate.RemoveReport) {
	printWarnings(report.Warnings)
	printNames("Disabled", style.NoticeStyle, report.Disabled)
	printNames("Deleted", style.NoticeStyle, report.Deleted)
	if !report.Changed {
		fmt.Println(style.MutedStyle.Render("No matching packages."))
	}
}

func printNames(label string, labelStyle lipgloss.Style, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("%s:\n", labelStyle.Render(label))
	for _, name := range names {
		fmt.Printf("  %s\n", style.PackageStyle.Render(name))
	}
}

func printList(result *listcmd.Result) {
	fmt.Println(style.Bold(fmt.Sprintf("Active (%d):", len(result.Active))))
	for _, e := range result.Active {
		line := "  " + style.PackageStyle.Render(e.Name)
		if e.Comment != "" {
			line += style.MutedStyle.Render("  " + strings.TrimSpace(e.Comment))
		}
		fmt.Println(line)
	}
	if len(result.Disabled) == 0 {
		return
	}
	fmt.Println(style.Bold(fmt.Sprintf("Disabled (%d):", len(result.Disabled))))
	for _, e := range result.Disabled {
		fmt.Printf("  %s\n", style.MutedStyle.Render(e.Name))
	}
}

func printListJSON(result *listcmd.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// printSearchResults renders search matches with descriptions wrapped to the
// terminal width. Terminals too narrow to wrap sensibly get unwrapped text.
func printSearchResults(results []nix.SearchResult, minWrapWidth int) {
	width := style.TerminalWidth() - searchMargin
	if width < minWrapWidth {
		width = 0
	}

	for _, r := range results {
		header := style.Bold(style.PackageStyle.Render(r.Attr))
		if r.Version != "" {
			header += " " + style.VersionStyle.Render("("+r.Version+")")
		}
		fmt.Println(header)
		if r.Description != "" {
			fmt.Println(style.MutedStyle.Render(style.Wrap(r.Description, width, searchIndent)))
		}
	}
	fmt.Printf("\n%s\n", style.MutedStyle.Render(fmt.Sprintf("%d package(s) found.", len(results))))
}
