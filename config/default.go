// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/cinecli/cinecli/color"
	"github.com/cinecli/cinecli/constant"
	"github.com/cinecli/cinecli/key"
	"github.com/cinecli/cinecli/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.CineCLI + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.TMDBAPIKey, "", "TMDB API key.\nSearch and metadata are unavailable until this is set.\nRun \"cinecli setup\" or set the CINECLI_TMDB_API_KEY environment variable")
	register(key.TMDBLanguage, "en-US", "Language passed to TMDB metadata requests")
	register(key.TorboxAPIKey, "", "TorBox API key (optional).\nTorBox actions are hidden while this is empty")
	register(key.StreamthruManifest, "", "Streamthru Stremio manifest URL (optional).\nMust end with /manifest.json")
	register(key.CometManifest, "", "Comet Stremio manifest URL (optional).\nMust end with /manifest.json")
	register(key.VidsrcMaxHosts, 3, "Maximum number of VidSrc embed variants to try per resolution")
	register(key.VidsrcTimeoutSeconds, 8, "HTTP timeout in seconds for VidSrc embed scraping")
	register(key.NetworkProxy, "", "HTTPS proxy wrapper template, e.g. https://host/path?destination=\nThe real destination URL is appended, url-escaped, to the template")
	register(key.Player, "mpv", "Media player to use.\nAvailable options are: mpv, vlc, clapper")
	register(key.WebtorrentTempDir, "", "Temp directory handed to webtorrent-cli while streaming torrents.\nDefaults to the cache directory when empty")
	register(key.DownloadDir, "", "Default download directory.\nWill prompt per download when empty")
	register(key.PreviewImages, true, "Render poster previews with chafa inside fzf")
	register(key.HistoryWrite, true, "Record plays and downloads to the local history file")
	register(key.HistoryLimit, 30, "Number of entries shown by the history command")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchLimit, 50, "Limit of search results to show")
	register(key.IconsVariant, "emoji", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
