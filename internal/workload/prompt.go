package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/me/rrsim/pkg/model"
)

// ErrNoInput is returned when the input ends before all values were read.
var ErrNoInput = errors.New("unexpected end of input")

// MaxPromptProcesses caps the process count accepted interactively.
const MaxPromptProcesses = 1000

// Prompter collects a process set interactively.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter reads answers from in and writes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Processes asks for the number of processes, then the arrival and burst
// time of P1..Pn. Invalid answers are re-prompted.
func (p *Prompter) Processes() ([]*model.Process, error) {
	n, err := p.IntRange("Enter number of processes: ", 1, MaxPromptProcesses)
	if err != nil {
		return nil, err
	}
	procs := make([]*model.Process, n)
	for i := range procs {
		id := i + 1
		at, err := p.Int(fmt.Sprintf("Enter arrival time for P%d: ", id), 0)
		if err != nil {
			return nil, err
		}
		bt, err := p.Int(fmt.Sprintf("Enter burst time for P%d: ", id), 1)
		if err != nil {
			return nil, err
		}
		procs[i] = model.NewProcess(id, at, bt)
	}
	return procs, nil
}

// Int prompts until it reads an integer >= min.
func (p *Prompter) Int(prompt string, min int) (int, error) {
	return p.IntRange(prompt, min, math.MaxInt)
}

// IntRange prompts until it reads an integer in [min, max].
func (p *Prompter) IntRange(prompt string, min, max int) (int, error) {
	for {
		fmt.Fprint(p.out, prompt)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, ErrNoInput
		}
		v, err := strconv.Atoi(strings.TrimSpace(p.in.Text()))
		if err != nil {
			fmt.Fprintln(p.out, "Please enter a whole number.")
			continue
		}
		if v < min {
			fmt.Fprintf(p.out, "Value must be at least %d.\n", min)
			continue
		}
		if v > max {
			fmt.Fprintf(p.out, "Value must be at most %d.\n", max)
			continue
		}
		return v, nil
	}
}
