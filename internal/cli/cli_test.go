package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/trestle/internal/ui"
)

// captureUI routes ui output into buffers and disables prompts for the
// duration of the test.
func captureUI(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	ui.SetOutput(out, errOut)
	ui.SetLogOutput(errOut)
	ui.SetQuiet(false)
	ui.SetNoInteractive(true)
	ui.DisableColor()

	t.Cleanup(func() {
		ui.SetOutput(os.Stdout, os.Stderr)
		ui.SetLogOutput(os.Stderr)
		ui.SetNoInteractive(false)
		ui.Logger.SetLevel(log.InfoLevel)
	})

	return out, errOut
}

// testCommand builds a bare command carrying the persistent flags the real
// root defines.
func testCommand() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("dry-run", false, "")
	cmd.Flags().Bool("verbose", false, "")
	cmd.Flags().Bool("quiet", false, "")
	cmd.Flags().Bool("no-interactive", true, "")
	cmd.Flags().String("config", "", "")
	return cmd
}

// isolateConfig points the global config directory at an empty temp dir.
func isolateConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}
