package ui

import "github.com/sfairchild/parasvg/internal/state"

// controlState is the single display decision for the sync control: which
// icon, spinner, or prompt the header shows. It is derived, never stored.
type controlState int

const (
	controlConnectPrompt controlState = iota
	controlSigningIn
	controlSaveUnsaved
	controlSavedLink
	controlSaving
	controlLoading
)

// controlInputs captures the state the decision depends on.
type controlInputs struct {
	Authenticated bool
	SigningIn     bool
	Status        state.Status
	HasSnapshot   bool
	Dirty         bool
}

// deriveControl maps the current component states onto exactly one control
// decision. It must be recomputable at any time; pending network activity
// outranks everything else, then authentication, then the dirty/clean
// distinction.
func deriveControl(in controlInputs) controlState {
	switch in.Status {
	case state.StatusSavePending:
		return controlSaving
	case state.StatusLoadPending:
		return controlLoading
	}
	if in.SigningIn {
		return controlSigningIn
	}
	if !in.Authenticated {
		return controlConnectPrompt
	}
	if in.HasSnapshot && !in.Dirty {
		return controlSavedLink
	}
	return controlSaveUnsaved
}

// controlLabel returns the header text for a control state. The spinner
// frame is rendered separately for the pending states.
func controlLabel(c controlState, remoteID string) string {
	switch c {
	case controlConnectPrompt:
		return "ctrl+g to connect GitHub"
	case controlSigningIn:
		return "signing in"
	case controlSaveUnsaved:
		return "unsaved · ctrl+s to save"
	case controlSavedLink:
		return "saved · gist " + remoteID
	case controlSaving:
		return "saving"
	case controlLoading:
		return "downloading"
	default:
		return ""
	}
}

// spinning reports whether the control state shows a spinner.
func spinning(c controlState) bool {
	switch c {
	case controlSigningIn, controlSaving, controlLoading:
		return true
	default:
		return false
	}
}
