package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	quiet  bool
)

// SetOutput redirects progress and error output. Passing nil keeps the
// current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// SetQuiet suppresses everything except errors.
func SetQuiet(q bool) {
	quiet = q
}

func printOut(line string) {
	if quiet {
		return
	}
	fmt.Fprintln(stdout, line)
}

func PrintInfo(msg string) {
	printOut(msg)
}

func PrintStep(msg string) {
	printOut(HeaderStyle.Render("==> ") + msg)
}

func PrintSuccess(msg string) {
	printOut(SuccessBadge.Render("OK") + " " + msg)
}

func PrintDone(msg string) {
	printOut(SuccessBadge.Render("DONE") + " " + msg)
}

func PrintWarning(msg string) {
	printOut(WarningBadge.Render("WARN") + " " + msg)
}

// PrintList prints an indented bullet list under a heading.
func PrintList(heading string, items []string) {
	if quiet || len(items) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(heading)
	for _, item := range items {
		b.WriteString("\n  ")
		b.WriteString(CodeStyle.Render(item))
	}
	printOut(b.String())
}

// PrintError writes to stderr and is never silenced.
func PrintError(msg string) {
	fmt.Fprintln(stderr, ErrorBadge.Render("ERROR")+" "+msg)
}

func PrintErrorWithHint(msg, hint string) {
	PrintError(msg)
	if hint != "" {
		fmt.Fprintln(stderr, MutedStyle.Render("  hint: "+hint))
	}
}
