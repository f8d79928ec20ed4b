package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"repopush/internal/domain"
)

// RepositoryRenderer handles rendering of repository items
type RepositoryRenderer struct {
	styles    *Styles
	showPaths bool
}

// NewRepositoryRenderer creates a new repository renderer
func NewRepositoryRenderer(styles *Styles, showPaths bool) *RepositoryRenderer {
	return &RepositoryRenderer{
		styles:    styles,
		showPaths: showPaths,
	}
}

// RepoItem is everything needed to draw one repository entry
type RepoItem struct {
	Repo        domain.RepoSummary
	Selected    bool
	Committing  bool
	CommitBusy  bool   // some commit is in flight
	InputView   string // live widget, only for the selected entry
	Message     string // stored commit message
	FieldError  string
	SpinnerView string
}

// RenderRepository renders a repository entry. Unselected entries take one
// line; the selected entry also shows its commit field.
func (r *RepositoryRenderer) RenderRepository(item RepoItem) string {
	bgColor := ""
	if item.Selected {
		bgColor = "238"
	}
	bg := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	var parts []string
	marker := "  "
	if item.Selected {
		marker = "▸ "
	}
	parts = append(parts, bg.Render(marker))
	parts = append(parts, bg.Bold(item.Selected).Render(fmt.Sprintf("%s/%s", item.Repo.Project, item.Repo.Repository)))

	branchStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(GetBranchColor(item.Repo.Branch)))
	if item.Selected {
		branchStyle = branchStyle.Background(lipgloss.Color(bgColor))
	}
	parts = append(parts, bg.Render(" ("), branchStyle.Render(item.Repo.Branch), bg.Render(")"))

	if item.Committing {
		parts = append(parts, " ", r.styles.StatusLoading.Render(item.SpinnerView+" 提交並推送中…"))
	} else if !item.Selected && item.Message != "" {
		parts = append(parts, " ", r.styles.Dim.Render("✎"))
	}

	lines := []string{strings.Join(parts, "")}

	if r.showPaths {
		location := item.Repo.Path
		if item.Repo.YearBranchPath != "" {
			location = fmt.Sprintf("%s  [%s]", location, item.Repo.YearBranchPath)
		}
		lines = append(lines, "    "+r.styles.Dim.Render(location))
	}

	if item.Selected {
		field := "    " + r.styles.Label.Render("訊息 ") + item.InputView
		if item.FieldError != "" {
			field += "  " + r.styles.FieldError.Render(item.FieldError)
		}
		lines = append(lines, field)
		if item.CommitBusy && !item.Committing {
			lines = append(lines, "    "+r.styles.Dim.Render("另一個提交進行中，請稍候"))
		}
	}

	return strings.Join(lines, "\n")
}
