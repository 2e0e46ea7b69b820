package helpers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/serpkit-go/internal/ports"
)

// Prompter implements ports.ConfirmationPrompter using stdin/stdout.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter constructs a prompter referencing stdio.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Enabled indicates the prompter is interactive.
func (p *Prompter) Enabled() bool {
	return true
}

// ConfirmOverwrite asks before replacing an existing output file.
func (p *Prompter) ConfirmOverwrite(path string) (bool, error) {
	fmt.Fprintf(p.out, "File %s already exists. Overwrite? [y/N]: ", path)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes", nil
}

// ConfirmWritable applies the overwrite policy for an output path:
// missing files pass, force skips the prompt, otherwise the user
// decides.
func ConfirmWritable(prompter ports.ConfirmationPrompter, path string, force bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}
	if force || prompter == nil || !prompter.Enabled() {
		return true, nil
	}
	return prompter.ConfirmOverwrite(path)
}

var _ ports.ConfirmationPrompter = (*Prompter)(nil)
