package chart

// Plotly colour names and qualitative sequences used by the builders.
const (
	colorTeal    = "#008080"
	colorDefault = "#636EFA"

	colorScaleViridis = "Viridis"
)

// dark24 is Plotly's qualitative Dark24 sequence.
var dark24 = []string{
	"#2E91E5", "#E15F99", "#1CA71C", "#FB0D0D", "#DA16FF", "#222A2A",
	"#B68100", "#750D86", "#EB663B", "#511CFB", "#00A08B", "#FB00D1",
	"#FC0080", "#B2828D", "#6C7C32", "#778AAE", "#862A16", "#A777F1",
	"#620042", "#1616A7", "#DA60CA", "#6C4516", "#0D2A63", "#AF0038",
}

// prism is Plotly's qualitative Prism sequence (CARTO).
var prism = []string{
	"#5F4690", "#1D6996", "#38A6A5", "#0F8554", "#73AF48", "#EDAD08",
	"#E17C05", "#CC503E", "#94346E", "#6F4070", "#666666",
}

func paletteColor(palette []string, i int) string {
	return palette[i%len(palette)]
}
