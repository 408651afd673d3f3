// Package ui drives interactive selection through an external fzf process.
//
// Every selectable row is rendered as "label<TAB>payload" where the payload is
// the base64-encoded JSON of the underlying value. fzf only displays the first
// column; the payload column feeds the hidden preview subcommand and travels
// back with the selection, so no index bookkeeping is needed.
package ui

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Runner executes the fuzzy-finder process. Tests substitute a fake.
type Runner interface {
	Run(args []string, input string) (output string, err error)
}

type execRunner struct{}

func (execRunner) Run(args []string, input string) (string, error) {
	cmd := exec.Command("fzf", args...)
	cmd.Stdin = strings.NewReader(input)
	cmd.Stderr = os.Stderr

	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	return out.String(), err
}

var runner Runner = execRunner{}

// SetRunner swaps the process runner, used by tests.
func SetRunner(r Runner) { runner = r }

// HasFzf reports whether fzf is available on PATH.
func HasFzf() bool {
	_, err := exec.LookPath("fzf")
	return err == nil
}

// EncodePayload serializes a value into the hidden second column.
func EncodePayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodePayload reverses EncodePayload into v.
func DecodePayload(payload string, v any) error {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return json.Unmarshal(data, v)
}

// Select asks the user to pick one of items. The second return value is false
// when the user aborted the picker; that is a skip, not an error.
func Select[T any](prompt string, items []T, label func(T) string) (T, bool, error) {
	return SelectPreview(prompt, items, label, false)
}

// SelectPreview is Select with the poster preview pane enabled when requested
// and configured.
func SelectPreview[T any](prompt string, items []T, label func(T) string, preview bool) (T, bool, error) {
	var zero T
	if len(items) == 0 {
		return zero, false, fmt.Errorf("nothing to select from")
	}

	if _, isExec := runner.(execRunner); isExec && !HasFzf() {
		return surveySelect(prompt, items, label)
	}

	var lines []string
	for _, item := range items {
		payload, err := EncodePayload(item)
		if err != nil {
			return zero, false, err
		}
		lines = append(lines, sanitizeLabel(label(item))+"\t"+payload)
	}

	args := []string{
		"--prompt", prompt + " ",
		"--with-nth=1",
		"--delimiter=\t",
		"--ansi",
		"--reverse",
		"--cycle",
	}
	if preview && viper.GetBool(key.PreviewImages) {
		if self, err := os.Executable(); err == nil {
			args = append(args,
				"--preview", fmt.Sprintf("%s preview {2}", self),
				"--preview-window", "right:50%:wrap",
			)
		}
	}

	out, err := runner.Run(args, strings.Join(lines, "\n"))
	selected := strings.TrimRight(out, "\n")
	if selected == "" {
		// fzf exits non-zero on abort as well; either way nothing was chosen.
		if err != nil {
			log.Debugf("ui: fzf: %v", err)
		}
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("fzf: %w", err)
	}

	_, payload, found := strings.Cut(selected, "\t")
	if !found {
		return zero, false, fmt.Errorf("fzf returned an unexpected line")
	}

	var picked T
	if err := DecodePayload(payload, &picked); err != nil {
		return zero, false, err
	}
	return picked, true, nil
}

// surveySelect is the degraded picker used when fzf is not installed.
func surveySelect[T any](prompt string, items []T, label func(T) string) (T, bool, error) {
	var zero T

	labels := lo.Map(items, func(item T, _ int) string {
		return sanitizeLabel(label(item))
	})

	var answer string
	err := survey.AskOne(&survey.Select{
		Message:  prompt,
		Options:  labels,
		PageSize: 15,
	}, &answer)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return zero, false, nil
		}
		return zero, false, err
	}

	idx := lo.IndexOf(labels, answer)
	if idx < 0 {
		return zero, false, nil
	}
	return items[idx], true, nil
}

// sanitizeLabel keeps labels single-line and free of the column delimiter.
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

// Input asks for a free-form line of text.
func Input(prompt, suggestion string) (string, error) {
	var answer string
	err := survey.AskOne(&survey.Input{Message: prompt, Default: suggestion}, &answer)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Confirm asks a yes/no question.
func Confirm(prompt string, fallback bool) (bool, error) {
	var answer bool
	err := survey.AskOne(&survey.Confirm{Message: prompt, Default: fallback}, &answer)
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return false, nil
		}
		return false, err
	}
	return answer, nil
}
