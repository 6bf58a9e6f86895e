package bot

import "obzvonbot/core/telegram/keyboard"

// Menu identifies which reply keyboard accompanies an outbound message.
type Menu int

const (
	// MenuRemove clears any visible reply keyboard.
	MenuRemove Menu = iota
	MenuMain
	MenuNumbers
	MenuCallsigns
	MenuEmployee
	MenuRegions
	// MenuNameEntry shows only the back button while free text is expected.
	MenuNameEntry
)

// Menus renders menu tags into reply keyboard layouts. It is stateless
// apart from the configured region list.
type Menus struct {
	regions []string
}

// NewMenus builds the renderer for the given region labels.
func NewMenus(regions []string) Menus {
	return Menus{regions: regions}
}

// Rows returns the button rows for a menu, or nil for MenuRemove.
func (m Menus) Rows(menu Menu) [][]string {
	switch menu {
	case MenuMain:
		return [][]string{
			{BtnNumbersSection, BtnCallsignsSection},
			{BtnEmployeeSection},
		}
	case MenuNumbers:
		return [][]string{
			{BtnWriteNumber},
			{BtnTodayNumbers},
			{BtnBackMain},
		}
	case MenuCallsigns:
		return [][]string{
			{BtnAddCallsign},
			{BtnTodayCallsign},
			{BtnBackMain},
		}
	case MenuEmployee:
		return [][]string{
			{BtnEmployeeName, BtnRegions},
			{BtnBackMain},
		}
	case MenuRegions:
		rows := keyboard.ChunkLabels(m.regions, 2)
		return append(rows, []string{BtnBackMain})
	case MenuNameEntry:
		return [][]string{{BtnBackMain}}
	}
	return nil
}
