package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutSidebarWidth is the minimum width to show the trending and
	// top-stars sidebar.
	LayoutSidebarWidth = 100

	// LayoutCompactWidth is the threshold below which list rows drop the
	// description column.
	LayoutCompactWidth = 80
)

// Component sizes.
const (
	// SidebarWidth is the width of the sidebar including its border.
	SidebarWidth = 30

	// CardWidth is the outer width of one grid card.
	CardWidth = 36

	// CardHeight is the outer height of one grid card.
	CardHeight = 6

	// chromeHeight is the number of lines used by header, search, chips,
	// status, detail and footer.
	chromeHeight = 7
)

// Timing constants.
const (
	// LoadTimeout bounds one fetch of the repository list.
	LoadTimeout = 15 * time.Second
)
