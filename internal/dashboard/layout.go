package dashboard

import "github.com/couchcryptid/quake-dashboard/internal/chart"

// ChartKind identifies one of the preset charts offered by the dropdown.
type ChartKind string

const (
	KindMagDist    ChartKind = "mag_dist"
	KindMagVsDepth ChartKind = "mag_vs_depth"
	KindGapVsNet   ChartKind = "gap_vs_net"
	KindPlaceNum   ChartKind = "place_num"
)

// Kinds lists the chart kinds in dropdown order.
var Kinds = []ChartKind{KindMagDist, KindMagVsDepth, KindGapVsNet, KindPlaceNum}

// Label is the dropdown text for the kind.
func (k ChartKind) Label() string {
	switch k {
	case KindMagDist:
		return "Magnitude Distribution"
	case KindMagVsDepth:
		return "Magnitude vs. Depth"
	case KindGapVsNet:
		return "Network vs. Gap"
	case KindPlaceNum:
		return "Location Frequencies"
	default:
		return ""
	}
}

// Valid reports whether k is one of Kinds.
func (k ChartKind) Valid() bool { return k.Label() != "" }

// ControlsID is the id of the parameter block shown for the kind.
func (k ChartKind) ControlsID() string {
	switch k {
	case KindMagDist:
		return "mag-dist-controls"
	case KindMagVsDepth:
		return "mag-depth-controls"
	case KindGapVsNet:
		return "gap-net-controls"
	case KindPlaceNum:
		return "place-controls"
	default:
		return ""
	}
}

// Widget ids shared by the page script and the callbacks.
const (
	IDDropdown       = "dropdown-comp"
	IDBinsInput      = "input-comp"
	IDColorChecklist = "color-comp"
	IDNetChecklist   = "box-comp"
	IDTopNSlider     = "slider-comp"
	IDDownloadButton = "download-button"
	IDGraph          = "dropdown-selected"

	// ColorOption is the single value of the colour checklist.
	ColorOption = "color"
)

// Option is a labelled choice in a dropdown or checklist.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// NumberInput is a bounded numeric field.
type NumberInput struct {
	ID                    string
	Min, Max, Step, Value int
}

// Slider is a bounded range control with labelled marks.
type Slider struct {
	ID                    string
	Min, Max, Step, Value int
	Marks                 []int
}

// Checklist is a group of checkboxes.
type Checklist struct {
	ID      string
	Inline  bool
	Options []Option
}

// ControlBlock is a parameter section that is only visible for one kind.
type ControlBlock struct {
	ID     string
	Prompt string
	Kind   ChartKind

	Number    *NumberInput
	Checklist *Checklist
	Slider    *Slider
}

// Layout is the static widget tree of the page.
type Layout struct {
	Title       string
	Welcome     string
	Intro       string
	Prompt      string
	Placeholder string
	Options     []Option
	DownloadID  string
	DownloadLbl string
	Blocks      []ControlBlock
	GraphID     string
}

// NetworkSource supplies the checklist options for the gap chart.
type NetworkSource interface {
	Networks() []string
	DefaultNetworks(n int) []string
}

// NewLayout builds the page layout. The network checklist lists every network
// in the table with the first defaultNets preselected.
func NewLayout(src NetworkSource, defaultNets int) Layout {
	options := make([]Option, 0, len(Kinds))
	for _, k := range Kinds {
		options = append(options, Option{Label: k.Label(), Value: string(k)})
	}

	preselected := make(map[string]bool)
	for _, n := range src.DefaultNetworks(defaultNets) {
		preselected[n] = true
	}
	var netOptions []Option
	for _, n := range src.Networks() {
		netOptions = append(netOptions, Option{Label: n, Value: n, Selected: preselected[n]})
	}

	var marks []int
	for i := chart.MinTopN; i <= chart.MaxTopN; i += 5 {
		marks = append(marks, i)
	}

	return Layout{
		Title:       "Earthquake Dashboard",
		Welcome:     "Welcome to the Earthquake Data Analysis Dashboard",
		Intro:       "Use the menu below to explore the visualizations of USGS data.",
		Prompt:      "Select an option:",
		Placeholder: "Click to see the dropdown menu",
		Options:     options,
		DownloadID:  IDDownloadButton,
		DownloadLbl: "Download Data",
		GraphID:     IDGraph,
		Blocks: []ControlBlock{
			{
				ID:     KindMagDist.ControlsID(),
				Kind:   KindMagDist,
				Prompt: "Input number of bins for histogram:",
				Number: &NumberInput{
					ID: IDBinsInput, Min: chart.MinBins, Max: chart.MaxBins, Step: 5, Value: chart.DefaultBins,
				},
			},
			{
				ID:     KindMagVsDepth.ControlsID(),
				Kind:   KindMagVsDepth,
				Prompt: "Check the box to color points by magnitude:",
				Checklist: &Checklist{
					ID:      IDColorChecklist,
					Options: []Option{{Label: "Color by magnitude", Value: ColorOption}},
				},
			},
			{
				ID:        KindGapVsNet.ControlsID(),
				Kind:      KindGapVsNet,
				Prompt:    "Check box to select network:",
				Checklist: &Checklist{ID: IDNetChecklist, Inline: true, Options: netOptions},
			},
			{
				ID:     KindPlaceNum.ControlsID(),
				Kind:   KindPlaceNum,
				Prompt: "Select number to show:",
				Slider: &Slider{
					ID: IDTopNSlider, Min: chart.MinTopN, Max: chart.MaxTopN, Step: 5,
					Value: chart.DefaultTopN, Marks: marks,
				},
			},
		},
	}
}
