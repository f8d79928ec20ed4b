package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"repopush/internal/domain"
	"repopush/internal/ui/input/types"
	"repopush/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Focus  types.Focus

	PatStatus       *domain.PatStatus
	PatLoading      bool
	RepoListLoading bool
	AddRepoLoading  bool
	CommitLoading   string
	InfoMessage     string
	ErrorMessage    string

	PatInput    string
	URLInput    string
	BranchInput string
	CommitInput string
	PatError    string
	URLError    string
	CommitError string
	RepoPreview string

	Repos          []domain.RepoSummary
	CommitMessages map[string]string
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int

	ShowHelp     bool
	HelpView     string
	FullHelpView string
	SpinnerView  string
	Activity     string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	repoRender  *RepositoryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showPaths bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		repoRender:  NewRepositoryRenderer(styles, showPaths),
		popupRender: NewPopupRenderer(styles),
	}
}

// FieldErrorText turns a validation code into display text
func FieldErrorText(code string) string {
	switch code {
	case state.ErrRequired:
		return "此欄位為必填"
	case state.ErrMaxLength:
		return fmt.Sprintf("最多 %d 個字", state.MaxCommitMessageLength)
	default:
		return code
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	if vs.ShowHelp {
		help := r.styles.Title.Render("repopush 說明") + "\n\n" + vs.FullHelpView
		return r.popupRender.RenderPopup(help, vs.Height, vs.Width, r.styles.InfoBox)
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(vs))
	content.WriteString("\n")

	if line := r.renderMessage(vs); line != "" {
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString(r.renderPatSection(vs))
	content.WriteString("\n")
	content.WriteString(r.renderAddRepoSection(vs))
	content.WriteString("\n")
	content.WriteString(r.renderRepoSection(vs))

	footer := r.styles.Help.Render(vs.HelpView)
	if vs.Activity != "" {
		footer = r.styles.Dim.Render(vs.Activity) + "\n" + footer
	}

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	footerLines := strings.Count(footer, "\n") + 1
	availableLines := vs.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - footerLines; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}
	content.WriteString("\n")
	content.WriteString(footer)

	mainStyle := r.styles.Main
	if vs.Height > 0 {
		mainStyle = mainStyle.MaxHeight(vs.Height)
	}
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitle(vs ViewState) string {
	logo := r.styles.Title.Render("repopush")

	var indicators []string
	if vs.PatLoading {
		indicators = append(indicators, "權杖")
	}
	if vs.RepoListLoading {
		indicators = append(indicators, "儲存庫清單")
	}
	if vs.AddRepoLoading {
		indicators = append(indicators, "新增儲存庫")
	}
	if vs.CommitLoading != "" {
		indicators = append(indicators, "提交")
	}
	if len(indicators) == 0 {
		return logo
	}

	right := r.styles.Dim.Render(fmt.Sprintf("%s %s", vs.SpinnerView, strings.Join(indicators, " | ")))
	termWidth := vs.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderMessage(vs ViewState) string {
	switch {
	case vs.ErrorMessage != "":
		return r.styles.StatusError.Render("✗ " + vs.ErrorMessage)
	case vs.InfoMessage != "":
		return r.styles.StatusSuccess.Render("✓ " + vs.InfoMessage)
	default:
		return ""
	}
}

func (r *Renderer) label(vs ViewState, f types.Focus, text string) string {
	if vs.Focus == f {
		return r.styles.FocusedLabel.Render("› " + text)
	}
	return r.styles.Label.Render("  " + text)
}

func (r *Renderer) renderPatSection(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("個人存取權杖"))
	b.WriteString("\n")

	var status string
	switch {
	case vs.PatStatus == nil && vs.PatLoading:
		status = r.styles.StatusLoading.Render("載入中…")
	case vs.PatStatus == nil:
		status = r.styles.Dim.Render("狀態未知")
	case vs.PatStatus.Configured:
		status = r.styles.StatusSuccess.Render("已設定 " + vs.PatStatus.MaskedPat)
	default:
		status = r.styles.StatusError.Render("尚未設定")
	}
	b.WriteString("  " + status + "\n")

	b.WriteString(r.label(vs, types.FocusPat, "新權杖 ") + vs.PatInput)
	if vs.PatError != "" {
		b.WriteString("  " + r.styles.FieldError.Render(FieldErrorText(vs.PatError)))
	}
	return b.String()
}

func (r *Renderer) renderAddRepoSection(vs ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Section.Render("新增儲存庫"))
	b.WriteString("\n")

	b.WriteString(r.label(vs, types.FocusRepoURL, "URL  ") + vs.URLInput)
	if vs.URLError != "" {
		b.WriteString("  " + r.styles.FieldError.Render(FieldErrorText(vs.URLError)))
	}
	b.WriteString("\n")
	b.WriteString(r.label(vs, types.FocusRepoBranch, "分支 ") + vs.BranchInput)
	if vs.RepoPreview != "" {
		b.WriteString("\n")
		b.WriteString("    " + r.styles.Preview.Render("將登記 "+vs.RepoPreview))
	}
	return b.String()
}

func (r *Renderer) renderRepoSection(vs ViewState) string {
	var b strings.Builder
	heading := fmt.Sprintf("儲存庫 (%d)", len(vs.Repos))
	if vs.Focus == types.FocusRepos {
		heading = "› " + heading
	}
	b.WriteString(r.styles.Section.Render(heading))
	b.WriteString("\n")

	if len(vs.Repos) == 0 {
		if vs.RepoListLoading {
			b.WriteString(r.styles.Dim.Render("  載入中…"))
		} else {
			b.WriteString(r.styles.Dim.Render("  尚未登記任何儲存庫"))
		}
		return b.String()
	}

	b.WriteString(r.renderRepositoryList(vs))
	return b.String()
}

// renderRepositoryList renders the window of entries starting at ViewportOffset
func (r *Renderer) renderRepositoryList(vs ViewState) string {
	total := len(vs.Repos)
	height := vs.ViewportHeight
	if height <= 0 || height > total {
		height = total
	}
	offset := vs.ViewportOffset
	if offset > total-height {
		offset = total - height
	}
	if offset < 0 {
		offset = 0
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset)))
	}

	end := offset + height
	for i := offset; i < end; i++ {
		repo := vs.Repos[i]
		item := RepoItem{
			Repo:        repo,
			Selected:    i == vs.SelectedIndex && vs.Focus == types.FocusRepos,
			Committing:  vs.CommitLoading == repo.ID,
			CommitBusy:  vs.CommitLoading != "",
			Message:     vs.CommitMessages[repo.ID],
			SpinnerView: vs.SpinnerView,
		}
		if item.Selected {
			item.InputView = vs.CommitInput
			if vs.CommitError != "" {
				item.FieldError = FieldErrorText(vs.CommitError)
			}
		}
		lines = append(lines, r.repoRender.RenderRepository(item))
	}

	if below := total - end; below > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}
