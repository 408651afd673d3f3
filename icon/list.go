package icon

// Icon identifies a renderable UI symbol in the global registry.
type Icon int

const (
	Movie Icon = iota + 1
	TV
	Play
	Download
	Magnet
	History
	Success
	Fail
	Progress
	Question
	Skip
)

var icons = map[Icon]*iconDef{
	Movie:    {emoji: "🎬", nerd: "\U000F0381", plain: "[M]", kaomoji: "(￣ω￣)", squares: "▣"},
	TV:       {emoji: "📺", nerd: "\U000F0379", plain: "[T]", kaomoji: "(・∀・)", squares: "▤"},
	Play:     {emoji: "▶️", nerd: "", plain: ">", kaomoji: "(ノ≧∀≦)ノ", squares: "▶"},
	Download: {emoji: "⬇️", nerd: "", plain: "v", kaomoji: "(っ'-')╮", squares: "▼"},
	Magnet:   {emoji: "🧲", nerd: "\U000F06A2", plain: "[U]", kaomoji: "(☍﹏⁰)", squares: "◈"},
	History:  {emoji: "🕑", nerd: "", plain: "[H]", kaomoji: "(´-ω-)", squares: "◷"},
	Success:  {emoji: "✅", nerd: "", plain: "+", kaomoji: "(￣▽￣)", squares: "■"},
	Fail:     {emoji: "❌", nerd: "", plain: "x", kaomoji: "(╯°□°)╯", squares: "□"},
	Progress: {emoji: "⏳", nerd: "", plain: "...", kaomoji: "(￣ヘ￣;)", squares: "▱"},
	Question: {emoji: "❓", nerd: "", plain: "?", kaomoji: "(・・?)", squares: "▨"},
	Skip:     {emoji: "⏭️", nerd: "", plain: ">>", kaomoji: "┐(￣ヘ￣)┌", squares: "▷"},
}
