package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// Colors are ANSI color indexes; an empty color means "no color".
type Theme struct {
	Name                                   string
	Title, Muted, Accent                   string
	Success, Error, Pending                string
	BoxUnchecked, BoxChecked               string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string
	SymDone, SymPending                    string
}

var current = classic()

func classic() Theme {
	return Theme{
		Name:  "classic",
		Title: "", Muted: "8", Accent: "12",
		Success: "2", Error: "1", Pending: "3",
		BoxUnchecked: "☐", BoxChecked: "☑",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymDone: "✔", SymPending: "•",
	}
}

// SetTheme selects "neon", "mono" or (default) "classic".
func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Name:  "neon",
			Title: "13", Muted: "8", Accent: "14",
			Success: "2", Error: "1", Pending: "11",
			BoxUnchecked: "◻", BoxChecked: "◼",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymDone: "✔", SymPending: "•",
		}
	case "mono":
		SetColorForcing(false, true)
		current = Theme{
			Name:         "mono",
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymDone: "x", SymPending: "-",
		}
	default:
		current = classic()
	}
}

func Current() Theme { return current }
