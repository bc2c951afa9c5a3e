package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/DanielAtanasovski/gh-repo-healthcheks/internal/models"
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 40 {
		width = 40
	}

	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	content := m.renderContent(width)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m Model) renderHeader(width int) string {
	title := TitleStyle.Render("🛡️ Repo Health Dashboard") +
		DimStyle.Render("  ·  ") +
		AccentStyle.Render(m.state.Mode.String())

	var status string
	switch {
	case m.state.Phase.Loading() && len(m.state.Repositories) == 0:
		status = "Loading repositories..."
	case len(m.state.Repositories) == 0 && m.state.ErrorMessage() == "":
		status = "No repositories found"
	default:
		active := 0
		for _, r := range m.state.Repositories {
			if len(r.OpenPullRequests) > 0 {
				active++
			}
		}
		status = fmt.Sprintf("%d repositories (%d with open PRs)", len(m.state.Repositories), active)
	}

	if !m.state.LastRefresh.IsZero() {
		status += DimStyle.Render("  ·  last refresh " + humanAge(m.state.LastRefresh))
	}
	if len(m.state.Organizations) > 0 {
		status += DimStyle.Render(fmt.Sprintf("  ·  %d orgs", len(m.state.Organizations)))
	}

	inner := lipgloss.JoinVertical(lipgloss.Center, title, NormalStyle.Render(status))
	return HeaderBorderStyle.Width(width - 2).Align(lipgloss.Center).Render(inner)
}

func (m Model) renderContent(width int) string {
	box := ContentBorderStyle.Width(width - 2)

	if errMsg := m.state.ErrorMessage(); errMsg != "" {
		body := lipgloss.JoinVertical(lipgloss.Center,
			"",
			ErrorStyle.Render("❌ Error loading repositories"),
			"",
			NormalStyle.Render(errMsg),
			"",
			DimStyle.Render("Press 'r' to retry"),
		)
		return box.Align(lipgloss.Center).Render(body)
	}

	if m.state.Phase.Loading() && len(m.state.Repositories) == 0 {
		lines := []string{
			"",
			m.spin.View() + " Loading repositories...",
			"",
		}
		if m.state.Phase.Total > 0 {
			lines = append(lines,
				fmt.Sprintf("Progress: %d / %d repositories", m.state.Phase.Done, m.state.Phase.Total),
				m.prog.ViewAs(float64(m.state.Phase.Done)/float64(m.state.Phase.Total)),
			)
		} else {
			lines = append(lines, DimStyle.Render("This may take a moment while we fetch data from GitHub."))
		}
		return box.Align(lipgloss.Center).Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	}

	if len(m.state.Repositories) == 0 {
		body := lipgloss.JoinVertical(lipgloss.Center,
			"",
			DimStyle.Render("📂 No repositories found"),
			"",
			DimStyle.Render("Make sure your GitHub token has access to repositories."),
			"",
			DimStyle.Render("Press 'r' to refresh"),
		)
		return box.Align(lipgloss.Center).Render(body)
	}

	return box.Render(m.renderTable(width - 4))
}

// renderTable draws the visible window of the repository list
func (m Model) renderTable(width int) string {
	repos := m.state.Repositories
	window := m.visibleRows()
	start := m.state.Cursor.Offset
	end := start + window
	if end > len(repos) {
		end = len(repos)
	}

	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render(fmt.Sprintf("%-*s %*s  %-*s %-*s %-*s %s",
		ColWidthName, "Repository",
		ColWidthPRs, "PRs",
		ColWidthActivity, "Last Activity",
		ColWidthInfo, "Info",
		ColWidthHealth, "Workflows",
		"Status")))
	b.WriteString("\n")

	for i := start; i < end; i++ {
		repo := repos[i]

		line := fmt.Sprintf("%-*s %*d  %-*s %-*s %-*s %s",
			ColWidthName, truncate(repo.Name, ColWidthName),
			ColWidthPRs, len(repo.OpenPullRequests),
			ColWidthActivity, lastActivity(repo),
			ColWidthInfo, truncate(repoInfo(repo), ColWidthInfo),
			ColWidthHealth, truncate(repo.WorkflowHealth.Emoji()+" "+repo.WorkflowHealth.Description(), ColWidthHealth),
			repo.Status.Emoji()+" "+repo.Status.Description())

		if i == m.state.Cursor.Selected {
			b.WriteString(SelectedRowStyle.Width(width).Render("» " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderFooter(width int) string {
	hints := []string{
		KeyStyle.Render("[r]") + " Refresh",
		KeyStyle.Render("[tab]") + " Mode",
		KeyStyle.Render("[↑↓]") + " Navigate",
		KeyStyle.Render("[PgUp/PgDn]") + " Page",
		KeyStyle.Render("[Home/End]") + " Top/Bottom",
		KeyStyle.Render("[q]") + " Quit",
	}
	line := strings.Join(hints, "  ")

	if len(m.state.Repositories) > 0 {
		line += DimStyle.Render(fmt.Sprintf("  (%d/%d)", m.state.Cursor.Selected+1, len(m.state.Repositories)))
	}
	if m.state.Phase.Enhancing() {
		line += AccentStyle.Render(fmt.Sprintf("  Enhancing: %d/%d", m.state.Phase.Done, m.state.Phase.Total))
	}
	if m.state.OrgsFetching {
		line += DimStyle.Render("  fetching orgs...")
	}
	if m.state.Notice != "" {
		line += AccentStyle.Render("  " + m.state.Notice)
	}

	return ContentBorderStyle.Width(width - 2).Align(lipgloss.Center).Render(line)
}

// lastActivity formats the latest commit age the way the dashboard shows it
func lastActivity(repo models.Repository) string {
	if repo.LatestCommitAt == nil {
		if repo.Status == models.ActivityUnknown && len(repo.RecentWorkflows) == 0 {
			return "-"
		}
		return "No commits"
	}
	days := int(timeSince(*repo.LatestCommitAt).Hours() / 24)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

// repoInfo combines language and star count into one cell
func repoInfo(repo models.Repository) string {
	switch {
	case repo.Language != "" && repo.Stars > 0:
		return fmt.Sprintf("%s (%d ⭐)", repo.Language, repo.Stars)
	case repo.Language != "":
		return repo.Language
	case repo.Stars > 0:
		return fmt.Sprintf("%d ⭐", repo.Stars)
	default:
		return "-"
	}
}

func timeSince(t time.Time) time.Duration {
	return time.Since(t)
}

// humanAge renders "how long ago" for the header refresh stamp
func humanAge(t time.Time) string {
	elapsed := time.Since(t)
	if elapsed < time.Minute {
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	}
	return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
