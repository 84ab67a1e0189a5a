package view

import (
	"fmt"
	"strings"

	"wukong/internal/api"
	"wukong/internal/color"
	"wukong/internal/state"
	"wukong/internal/tui/components"
	"wukong/internal/tui/model"
)

// panelPlaceholder returns the text shown instead of panel data while it is
// loading, failed or not configured.
func panelPlaceholder(m *model.Model, p state.Panel) (string, bool) {
	st := m.Snapshot.Panel(p)
	switch {
	case st.Disabled:
		return color.SubtleTextStyle.Render("Not configured for this namespace"), true
	case st.Err != "":
		return panelError(st), true
	case st.Loading:
		return m.Spinner.View() + " Loading...", true
	}
	return "", false
}

func renderBuilds(m *model.Model, width, height int) string {
	p := components.NewPanel("Builds", width, height).WithFocus(focusOf(m, model.Build()))
	if !m.Snapshot.Selection.Complete() {
		return p.WithContent(color.SubtleTextStyle.Render("No version selected")).Render()
	}
	if text, ok := panelPlaceholder(m, state.PanelBuilds); ok {
		return p.WithContent(text).Render()
	}

	var rows []string
	for _, b := range m.Snapshot.Builds {
		rows = append(rows, color.ValueStyle.Render(b.Name))
		for _, c := range b.Commits {
			rows = append(rows, "  "+color.SubtleTextStyle.Render(shortID(c.ID))+" "+c.MessageHeadline)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, color.SubtleTextStyle.Render("No builds"))
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}

func shortID(id string) string {
	return api.Deployment{DeployedRef: id}.ShortRef()
}

func renderDeployments(m *model.Model, width, height int) string {
	p := components.NewPanel("Deployments", width, height).WithFocus(focusOf(m, model.Deployment()))
	if text, ok := panelPlaceholder(m, state.PanelDeployments); ok {
		return p.WithContent(text).Render()
	}

	sel := m.Snapshot.Selection
	var rows []string
	for _, d := range m.Snapshot.Deployments {
		marker := "  "
		style := color.InputStyle
		if d.Environment == sel.Namespace && d.Version == sel.Version {
			marker = "▶ "
			style = color.SelectedStyle
		}
		row := fmt.Sprintf("%s%s/%s %s %s", marker, d.Environment, d.Version, deploymentStatus(d), d.ShortRef())
		if !d.LastDeployedAt.IsZero() {
			row += " " + color.SubtleTextStyle.Render(d.LastDeployedAt.Format("2006-01-02 15:04"))
		}
		if d.DeployedBy != "" {
			row += " " + color.SubtleTextStyle.Render("by "+d.DeployedBy)
		}
		rows = append(rows, style.Render(row))
	}
	if len(rows) == 0 {
		rows = append(rows, color.SubtleTextStyle.Render("No deployments"))
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}

func deploymentStatus(d api.Deployment) string {
	switch {
	case !d.Enabled:
		return color.SubtleTextStyle.Render("disabled")
	case strings.EqualFold(d.Status, "SUCCESS"):
		return color.SuccessTextStyle.Render(strings.ToLower(d.Status))
	case strings.EqualFold(d.Status, "FAILURE"), strings.EqualFold(d.Status, "FAILED"):
		return color.ErrorTextStyle.Render(strings.ToLower(d.Status))
	case d.Status == "":
		return color.SubtleTextStyle.Render("unknown")
	default:
		return color.WarningTextStyle.Render(strings.ToLower(d.Status))
	}
}

func renderDatabaseSummary(m *model.Model, width, height int) string {
	p := components.NewPanel("Database", width, height).WithFocus(focusOf(m, model.Database()))
	if text, ok := panelPlaceholder(m, state.PanelDatabase); ok {
		return p.WithContent(text).Render()
	}
	var rows []string
	for _, db := range m.Snapshot.Databases {
		rows = append(rows, fmt.Sprintf("%s  cpu %.1f%%  connections %d/%d",
			color.ValueStyle.Render(db.Name), db.CPUUtilization, db.ConnectionsCount, db.MaxConnectionsCount))
	}
	if len(rows) == 0 {
		rows = append(rows, color.SubtleTextStyle.Render("No databases"))
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}

func renderDatabasesTab(m *model.Model, width, height int) string {
	p := components.NewPanel("Databases", width, height).WithFocus(middleFocus(m))
	if text, ok := panelPlaceholder(m, state.PanelDatabase); ok {
		return p.WithContent(text).Render()
	}
	var rows []string
	for _, db := range m.Snapshot.Databases {
		rows = append(rows,
			color.ValueStyle.Render(db.Name),
			fmt.Sprintf("  CPU utilization  %6.2f%%", db.CPUUtilization),
			fmt.Sprintf("  Memory usage     %s", formatBytes(db.MemoryUsage)),
			fmt.Sprintf("  Memory free      %s", formatBytes(db.MemoryFree)),
			fmt.Sprintf("  Memory cache     %s", formatBytes(db.MemoryCache)),
			fmt.Sprintf("  Connections      %d / %d", db.ConnectionsCount, db.MaxConnectionsCount),
		)
	}
	if len(rows) == 0 {
		rows = append(rows, color.SubtleTextStyle.Render("No databases"))
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}

func formatBytes(b float64) string {
	units := []string{"B", "KiB", "MiB", "GiB", "TiB"}
	i := 0
	for b >= 1024 && i < len(units)-1 {
		b /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", b, units[i])
}

var windowLabels = map[api.Timeframe]string{
	api.TimeframeR1H:  "1h",
	api.TimeframeR24H: "24h",
	api.TimeframeR7D:  "7d",
}

func renderAppsignal(m *model.Model, width, height int) string {
	p := components.NewPanel("AppSignal", width, height).WithFocus(middleFocus(m))
	if text, ok := panelPlaceholder(m, state.PanelAppsignal); ok {
		return p.WithContent(text).Render()
	}

	metrics := m.Snapshot.Appsignal
	var header, errRate, throughput strings.Builder
	header.WriteString(fmt.Sprintf("%-14s", ""))
	errRate.WriteString(fmt.Sprintf("%-14s", "Error rate"))
	throughput.WriteString(fmt.Sprintf("%-14s", "Throughput"))
	for i, w := range api.MetricWindows {
		header.WriteString(fmt.Sprintf("%12s", windowLabels[w]))
		errRate.WriteString(fmt.Sprintf("%11.2f%%", metrics.ErrorRate[i]))
		throughput.WriteString(fmt.Sprintf("%12.0f", metrics.Throughput[i]))
	}

	rows := []string{
		color.LabelStyle.Render(header.String()),
		errRate.String(),
		throughput.String(),
		"",
		color.LabelStyle.Render("Latency (1h)"),
		fmt.Sprintf("  mean %.1f ms  p90 %.1f ms  p95 %.1f ms", metrics.Latency.Mean, metrics.Latency.P90, metrics.Latency.P95),
	}
	return p.WithContent(strings.Join(rows, "\n")).Render()
}
