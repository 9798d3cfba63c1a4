package welcome

import (
	"strings"

	"scandoc_cli/pkg/ui/components/utils"
	"scandoc_cli/pkg/ui/styles"
	"scandoc_cli/pkg/version"
)

const appName = "scandoc"

// TitleText returns the unstyled title line.
func TitleText() string {
	return appName + " " + version.Summary() + " - document assistant"
}

// Title renders the title line for the given width: name and version on the
// left, the optional hint right-aligned when it fits.
func Title(width int, hint string) string {
	title := TitleText()
	if width <= 0 {
		return styles.TitleStyle.Render(title)
	}

	row := utils.Spread(width, 2, title, hint, "")
	if row.Right == "" {
		return styles.TitleStyle.Render(row.Left)
	}
	return styles.TitleStyle.Render(row.Left) + strings.Repeat(" ", row.Gap) + styles.TextMutedStyle.Render(row.Right)
}
