// Package color holds the palette and lipgloss styles of the dashboard.
//
// Colors are adaptive: every entry carries a light and a dark variant and
// lipgloss picks one based on the terminal background. Initialize forces
// the choice, which the dashboard command does from the WUKONG_THEME
// environment variable or from terminal detection.
//
// Styles are package level variables so that the view package can use them
// without threading a theme through every render function:
//
//	title := color.PanelTitleStyle.Render("Builds")
//	err := color.ErrorTextStyle.Render(status.Err)
package color
