package cli

import (
	"github.com/peterh/liner"
)

// Prompter reads a single line of interactive input, used only when the
// archive path is omitted (and no --resume is given) and the caller opted
// into --interactive; it then also asks for an optional starting password.
// Whether stdin is a terminal is not checked. The search engine itself never
// blocks on this — it's
// a thin collaborator that fills in flags before the run starts.
type Prompter struct {
	state *liner.State
}

// NewPrompter creates a line-input prompter.
func NewPrompter() *Prompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &Prompter{state: state}
}

// Close releases the underlying terminal state.
func (p *Prompter) Close() error {
	return p.state.Close()
}

// Prompt shows prompt and reads one line of input. A Ctrl-C or EOF is
// reported as liner.ErrPromptAborted / io.EOF respectively.
func (p *Prompter) Prompt(prompt string) (string, error) {
	return p.state.Prompt(prompt)
}
