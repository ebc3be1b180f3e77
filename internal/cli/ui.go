package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/loadstone/loadstone/pkg/depgraph"
	"github.com/loadstone/loadstone/pkg/report"
)

// Color palette.
var (
	colorCyan   = lipgloss.Color("36")  // primary actions
	colorGreen  = lipgloss.Color("35")  // success, satisfied
	colorYellow = lipgloss.Color("220") // warnings, missing
	colorRed    = lipgloss.Color("167") // errors, cycles
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim       = lipgloss.NewStyle().Foreground(colorDim)
	styleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	styleSatisfied = lipgloss.NewStyle().Foreground(colorGreen)
	styleMissing   = lipgloss.NewStyle().Foreground(colorYellow)
	styleCycle     = lipgloss.NewStyle().Foreground(colorRed)
	styleIgnored   = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + styleWarning.Render(fmt.Sprintf(format, args...)))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

func printNewline() {
	fmt.Println()
}

// statusStyle picks the render style for a node status.
func statusStyle(s depgraph.Status) lipgloss.Style {
	switch s {
	case depgraph.StatusSatisfied:
		return styleSatisfied
	case depgraph.StatusMissing:
		return styleMissing
	case depgraph.StatusCycle:
		return styleCycle
	default:
		return styleIgnored
	}
}

// printTree renders a dependency tree with box-drawing connectors, each
// node tagged with its colored status.
func printTree(root *depgraph.Node) {
	fmt.Println(styleTitle.Render(root.Name) + " " + styleDim.Render("("+string(root.ID)+")"))
	printBranches(root.Children, "")
}

func printBranches(children []*depgraph.Node, prefix string) {
	for i, child := range children {
		connector, childPrefix := "├─ ", prefix+"│  "
		if i == len(children)-1 {
			connector, childPrefix = "└─ ", prefix+"   "
		}

		line := prefix + styleDim.Render(connector) + styleValue.Render(child.Name) +
			" " + statusStyle(child.Status).Render("["+child.Status.String()+"]")
		if child.Replacement != nil {
			line += " " + styleDim.Render(iconArrow+" "+child.Replacement.Name)
		}
		if child.Notes != "" {
			line += " " + styleDim.Render("("+child.Notes+")")
		}
		fmt.Println(line)
		printBranches(child.Children, childPrefix)
	}
}

// printOrder renders a load order as a numbered list with a header line
// whenever the placement priority changes.
func printOrder(placements []report.Placement) {
	lastPriority := -1
	for i, p := range placements {
		if p.Priority != lastPriority {
			fmt.Println(styleDim.Render(fmt.Sprintf("--- %02d. %s ---", p.Priority, p.Category)))
			lastPriority = p.Priority
		}
		fmt.Printf("%s %s %s\n",
			styleDim.Render(fmt.Sprintf("%3d.", i+1)),
			styleValue.Render(p.Folder),
			styleDim.Render("("+p.Name+")"))
	}
}

// printMissing renders the unmet-requirement reports.
func printMissing(missing []depgraph.MissingReport) {
	for _, m := range missing {
		printWarning("missing: %s (%s)", m.Name, m.ID)
		if m.Replacement != nil {
			printDetail("intended substitute: %s (%s)", m.Replacement.Name, m.Replacement.ID)
		}
		for _, by := range m.RequiredByInstalled {
			if by.Notes != "" {
				printDetail("required by %s: %s", by.Folder, by.Notes)
			} else {
				printDetail("required by %s", by.Folder)
			}
		}
		for _, by := range m.RequiredByMissing {
			printDetail("required by missing mod %s (%s)", by.Name, by.ID)
		}
	}
}
