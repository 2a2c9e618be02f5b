package core

// ModeKind names the active interaction context.
type ModeKind int

const (
    ModeBase ModeKind = iota
    ModeCommitEntry
    ModeDiffMenu
    ModePushWizard
    ModePullWizard
    ModeBranchMenu
    ModeBranchPrompt
    ModeStashMenu
    ModeResetMenu
    ModeResetPrompt
    ModeResult
    ModeTutorial
)

// WizardStage is the explicit wizard sub-state. A wizard is opened at
// StageMenu, walks StageUser → StageSecret → (StageTarget for manual
// targets) and dispatches exactly once on reaching StageReady. There is no
// ambiguity between "field deliberately blank" and "field not collected":
// an empty submission abandons back to StageMenu.
type WizardStage int

const (
    StageMenu WizardStage = iota
    StageUser
    StageSecret
    StageTarget
    StageReady
)

// TargetKind records how the wizard's target slot is filled.
type TargetKind int

const (
    TargetManual TargetKind = iota // collected as free text
    TargetRemote                   // the configured remote
    TargetBranch                   // the current head branch
)

// WizardState is the collected push/pull wizard state.
type WizardState struct {
    Stage  WizardStage
    Target TargetKind
    User   string
    Secret string
    Ref    string // manual target value
}

// Mode is the current interaction context. Exactly one is active; payload
// fields are meaningful only for the kind that declares them.
type Mode struct {
    Kind   ModeKind
    Wizard WizardState  // push/pull wizard
    Branch BranchAction // branch prompt
    Hard   bool         // reset prompt
    Result string       // result display text
    Return ModeKind     // tutorial: the originating context
}

// Base is the initial mode.
var Base = Mode{Kind: ModeBase}

// CollectsText reports whether the mode waits for a line of free text
// instead of single-key commands.
func (m Mode) CollectsText() bool {
    switch m.Kind {
    case ModeCommitEntry, ModeBranchPrompt, ModeResetPrompt:
        return true
    case ModePushWizard, ModePullWizard:
        return m.Wizard.Stage != StageMenu
    }
    return false
}

// Family returns the key-table family for the mode, resolving tutorials to
// their originating context.
func (m Mode) Family() ModeKind {
    if m.Kind == ModeTutorial {
        return m.Return
    }
    return m.Kind
}
