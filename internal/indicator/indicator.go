// Package indicator decides how the show-desktop button should look for a
// given session state. It does no rendering.
package indicator

import "fmt"

const (
	IconShowDesktop = "user-home-symbolic"
	IconRestore     = "view-restore-symbolic"
)

// Presentation is what a panel button needs to draw itself.
type Presentation struct {
	IconName  string `json:"icon_name"`
	Tooltip   string `json:"tooltip"`
	Minimized bool   `json:"minimized"`
}

// Present returns the presentation for pendingCount windows awaiting
// restore. showCount includes the count in the tooltip.
func Present(pendingCount int, showCount bool) Presentation {
	if pendingCount <= 0 {
		return Presentation{
			IconName: IconShowDesktop,
			Tooltip:  "Minimize all windows and show desktop",
		}
	}

	tooltip := "Restore windows"
	if showCount {
		noun := "windows"
		if pendingCount == 1 {
			noun = "window"
		}
		tooltip = fmt.Sprintf("Restore %d %s", pendingCount, noun)
	}
	return Presentation{
		IconName:  IconRestore,
		Tooltip:   tooltip,
		Minimized: true,
	}
}
