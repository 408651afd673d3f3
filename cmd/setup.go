// Package cmd implements the command-line interface for cinecli.
package cmd

import (
	"fmt"
	"os/exec"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cinecli/cinecli/auth"
	"github.com/cinecli/cinecli/color"
	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/icon"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/log"
	"github.com/cinecli/cinecli/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

// setupCmd walks through the first-run configuration interactively.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Configure API keys, the player and preview rendering",
	Long: `Interactively configure cinecli: the TMDB API key required for search,
the optional TorBox API key for debrid streams, the preferred player and
poster previews. Keys can be stored in the system keyring instead of the
plain-text config file.`,
	Run: func(cmd *cobra.Command, args []string) {
		useKeyring := askKeyringPreference()

		askCredential(
			"TMDB API key (https://www.themoviedb.org/settings/api):",
			key.TMDBAPIKey, auth.TMDBKey, useKeyring,
		)
		askCredential(
			"TorBox API key (optional, leave empty to skip):",
			key.TorboxAPIKey, auth.TorboxKey, useKeyring,
		)
		askPlayer()
		askPreviews()

		writeConfig()
		fmt.Printf("%s Setup complete, run %s to start browsing\n", icon.Get(icon.Success), style.Fg(color.Purple)(constant.CineCLI))
	},
}

func askKeyringPreference() bool {
	var useKeyring bool
	err := survey.AskOne(&survey.Confirm{
		Message: "Store API keys in the system keyring instead of the config file?",
		Default: false,
	}, &useKeyring)
	handleErr(err)

	return useKeyring
}

// askCredential prompts for a single API key. An empty answer keeps whatever
// is currently configured.
func askCredential(prompt, configKey string, credential auth.Credential, useKeyring bool) {
	if viper.GetString(configKey) != "" {
		var replace bool
		err := survey.AskOne(&survey.Confirm{
			Message: fmt.Sprintf("%s is already set. Replace?", configKey),
			Default: false,
		}, &replace)
		handleErr(err)

		if !replace {
			return
		}
	}

	var value string
	err := survey.AskOne(&survey.Password{Message: prompt}, &value)
	handleErr(err)

	if value == "" {
		return
	}

	if useKeyring {
		if err := auth.Set(credential, value); err != nil {
			log.Errorf("keyring store failed, falling back to config file: %s", err)
		} else {
			// Keep the value out of the written config file but visible to the
			// current process.
			viper.Set(configKey, value)
			return
		}
	}

	viper.Set(configKey, value)
}

func askPlayer() {
	installed := lo.Filter([]string{"mpv", "vlc", "clapper"}, func(player string, _ int) bool {
		_, err := exec.LookPath(player)
		return err == nil
	})

	if len(installed) == 0 {
		log.Warnf("no supported player found on PATH, install mpv, vlc or clapper")
		return
	}

	var player string
	err := survey.AskOne(&survey.Select{
		Message: "Preferred player:",
		Options: installed,
		Default: lo.Ternary(lo.Contains(installed, viper.GetString(key.Player)), viper.GetString(key.Player), installed[0]),
	}, &player)
	handleErr(err)

	viper.Set(key.Player, player)
}

func askPreviews() {
	_, err := exec.LookPath("chafa")
	if err != nil {
		log.Warnf("chafa not found on PATH, poster previews will be text-only")
	}

	var previews bool
	err = survey.AskOne(&survey.Confirm{
		Message: "Render poster previews inside the picker?",
		Default: viper.GetBool(key.PreviewImages),
	}, &previews)
	handleErr(err)

	viper.Set(key.PreviewImages, previews)
}

func writeConfig() {
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		handleErr(viper.SafeWriteConfig())
	default:
		handleErr(err)
	}
}
