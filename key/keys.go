// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// TMDB Metadata Provider - these keys manage authentication and localization for The Movie Database.
const (
	TMDBAPIKey   = "tmdb.api_key"
	TMDBLanguage = "tmdb.language"
)

// Stream Resolution Providers - these keys gate the optional provider integrations.
const (
	TorboxAPIKey         = "torbox.api_key"
	StreamthruManifest   = "addons.streamthru_manifest_url"
	CometManifest        = "addons.comet_manifest_url"
	VidsrcMaxHosts       = "vidsrc.max_hosts"
	VidsrcTimeoutSeconds = "vidsrc.timeout"
)

// Network - these keys govern outbound HTTP behavior, including proxy-template rewriting.
const (
	NetworkProxy = "network.proxy"
)

// Playback and Downloads - these keys maintain the configuration for external media tools.
const (
	Player            = "player.default"
	WebtorrentTempDir = "download.webtorrent_tmp_dir"
	DownloadDir       = "download.dir"
)

// Preview Rendering - these keys configure the chafa-backed poster previews inside fzf.
const (
	PreviewImages = "preview.images"
)

// History Tracking - these keys configure the persistence of playback and download records.
const (
	HistoryWrite = "history.write"
	HistoryLimit = "history.limit"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
