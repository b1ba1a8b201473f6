// Package entity contains the core business objects of the project.
package entity

// ToolMode is the active drawing-toolkit mode.
type ToolMode string

const (
	ToolModeNone         ToolMode = "none"
	ToolModeSimpleSelect ToolMode = "simple_select"
	ToolModeDirectSelect ToolMode = "direct_select"
	ToolModeDrawPolygon  ToolMode = "draw_polygon"
	ToolModeDrawPoint    ToolMode = "draw_point"
	// ToolModeTrash is transient: it deletes the selection and reverts.
	ToolModeTrash ToolMode = "trash"
)

// String returns the string representation of the ToolMode.
func (m ToolMode) String() string {
	return string(m)
}

// IsValid checks if the ToolMode is a valid value.
func (m ToolMode) IsValid() bool {
	switch m {
	case ToolModeNone, ToolModeSimpleSelect, ToolModeDirectSelect,
		ToolModeDrawPolygon, ToolModeDrawPoint, ToolModeTrash:
		return true
	default:
		return false
	}
}

// ToolkitMode is the mode name sent to the drawing toolkit. The toolkit has
// no "none" mode, so panning runs in simple_select with nothing selected.
func (m ToolMode) ToolkitMode() string {
	if m == ToolModeNone {
		return string(ToolModeSimpleSelect)
	}

	return string(m)
}
