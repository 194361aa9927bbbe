package nix

import (
	"io"
	"os/exec"

	"github.com/arthur-debert/annix/pkg/errors"
	"github.com/arthur-debert/annix/pkg/logging"
)

// Rebuilder runs the configured system rebuild command, streaming its
// output through to the given writers.
type Rebuilder struct {
	argv   []string
	stdout io.Writer
	stderr io.Writer
}

// NewRebuilder creates a rebuilder for the given argv
func NewRebuilder(argv []string, stdout, stderr io.Writer) *Rebuilder {
	return &Rebuilder{argv: argv, stdout: stdout, stderr: stderr}
}

// Run executes the rebuild command and waits for it to finish
func (r *Rebuilder) Run() error {
	if len(r.argv) == 0 {
		return errors.New(errors.ErrRebuild, "rebuild command is not configured")
	}

	logger := logging.GetLogger("nix")
	logger.Info().Strs("argv", r.argv).Msg("Running rebuild command")

	cmd := exec.Command(r.argv[0], r.argv[1:]...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrRebuild, "rebuild command %q failed", r.argv[0])
	}
	return nil
}
