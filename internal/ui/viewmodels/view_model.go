package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"

	"repopush/internal/repourl"
	"repopush/internal/ui/input"
	"repopush/internal/ui/input/types"
	"repopush/internal/ui/state"
	"repopush/internal/ui/views"
)

// Selection is the UI-only cursor over the repository list
type Selection struct {
	Index          int
	ViewportOffset int
	ViewportHeight int
}

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	width    int
	height   int
	help     help.Model
	showHelp bool
	spinner  string
	activity string
}

// NewViewModel creates a new view model
func NewViewModel() *ViewModel {
	return &ViewModel{help: help.New()}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// ToggleHelp flips the help overlay
func (vm *ViewModel) ToggleHelp() {
	vm.showHelp = !vm.showHelp
}

// HelpVisible reports whether the help overlay is shown
func (vm *ViewModel) HelpVisible() bool {
	return vm.showHelp
}

// SetSpinner sets the current spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetActivity sets the footer activity line
func (vm *ViewModel) SetActivity(line string) {
	vm.activity = line
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState(snap state.Snapshot, handler *input.Handler, sel Selection) views.ViewState {
	keys := handler.Keys()

	messages := make(map[string]string, len(snap.CommitInputs))
	for id, in := range snap.CommitInputs {
		messages[id] = in.Value
	}

	vs := views.ViewState{
		Width:           vm.width,
		Height:          vm.height,
		Focus:           handler.CurrentFocus(),
		PatStatus:       snap.PatStatus,
		PatLoading:      snap.PatLoading,
		RepoListLoading: snap.RepoListLoading,
		AddRepoLoading:  snap.AddRepoLoading,
		CommitLoading:   snap.CommitLoading,
		InfoMessage:     snap.InfoMessage,
		ErrorMessage:    snap.ErrorMessage,
		PatInput:        handler.View(types.FocusPat),
		URLInput:        handler.View(types.FocusRepoURL),
		BranchInput:     handler.View(types.FocusRepoBranch),
		CommitInput:     handler.View(types.FocusRepos),
		RepoPreview:     repourl.Preview(snap.RepoForm.URL.Value, snap.RepoForm.Branch.Value),
		Repos:           snap.Repos,
		CommitMessages:  messages,
		SelectedIndex:   sel.Index,
		ViewportOffset:  sel.ViewportOffset,
		ViewportHeight:  sel.ViewportHeight,
		ShowHelp:        vm.showHelp,
		HelpView:        vm.help.ShortHelpView(keys.ShortHelp()),
		FullHelpView:    vm.help.FullHelpView(keys.FullHelp()),
		SpinnerView:     vm.spinner,
		Activity:        vm.activity,
	}

	if f := snap.PatForm.Pat; f.Invalid() {
		vs.PatError = f.Error
	}
	if f := snap.RepoForm.URL; f.Invalid() {
		vs.URLError = f.Error
	}
	if sel.Index >= 0 && sel.Index < len(snap.Repos) {
		if in, ok := snap.CommitInputs[snap.Repos[sel.Index].ID]; ok && in.Invalid() {
			vs.CommitError = in.Error
		}
	}
	return vs
}
