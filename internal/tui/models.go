package tui

type View int

const (
	ViewResults View = iota
	ViewDetail
)

// focus selects which results-view widget receives keys.
type focus int

const (
	focusInput focus = iota
	focusList
	focusFilter
)
