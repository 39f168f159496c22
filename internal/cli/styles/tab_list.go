package styles

import (
	"fmt"
	"strings"

	"github.com/tabdeck/tabdeck/internal/domain/entity"
)

// RenderTabList renders tabs grouped under their group headers, with
// ungrouped tabs first. The active tab is highlighted and pinned tabs
// carry a marker.
func RenderTabList(theme *Theme, tabs []entity.Tab, groups []entity.Group) string {
	if len(tabs) == 0 {
		return theme.Subtle.Render("no tabs")
	}

	var b strings.Builder
	renderLine := func(tab entity.Tab) {
		style := theme.InactiveTab
		marker := " "
		if tab.IsActive {
			style = theme.ActiveTab
			marker = "*"
		}
		pin := ""
		if tab.IsPinned {
			pin = theme.PinnedMarker.Render(" [pinned]")
		}
		b.WriteString(fmt.Sprintf("%s %2d  %s%s  %s\n",
			marker,
			tab.Order,
			style.Render(tab.Title),
			pin,
			theme.Subtle.Render(string(tab.ID)),
		))
	}

	for _, tab := range tabs {
		if tab.GroupID == "" {
			renderLine(tab)
		}
	}

	for _, group := range groups {
		header := group.Title
		if group.IsCollapsed {
			header += " (collapsed)"
		}
		b.WriteString(theme.GroupHeader.Render(header))
		b.WriteString("\n")
		for _, tab := range tabs {
			if tab.GroupID == group.ID {
				renderLine(tab)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
