// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/style"
)

// CheckDependencies verifies the availability of required system dependencies.
// fzf drives every picker and at least one supported player must be present.
func CheckDependencies() {
	if _, err := exec.LookPath("fzf"); err != nil {
		printMissingDependencyError("fzf")
		os.Exit(1)
	}

	for _, player := range []string{"mpv", "vlc", "clapper"} {
		if _, err := exec.LookPath(player); err == nil {
			return
		}
	}
	printMissingDependencyError("mpv")
	os.Exit(1)
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case "darwin":
		installCmd = "brew install " + dep
	case "linux":
		installCmd = "sudo apt install " + dep
	case "windows":
		installCmd = "scoop install " + dep
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
