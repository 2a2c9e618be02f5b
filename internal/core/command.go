package core

// CommandKind tags a parsed user intent.
type CommandKind int

const (
    CmdNone CommandKind = iota

    // Navigation. OnScreen is set by the driver from viewport bounds:
    // true moves the cursor, false asks the presentation layer to scroll.
    CmdUp
    CmdDown

    // Immediate actions.
    CmdStage      // cursor target
    CmdUnstage    // cursor target
    CmdStageAll
    CmdUnstageAll
    CmdCommit // Text = message; empty on first open
    CmdCheckout
    CmdCreateBranch
    CmdDeleteBranch
    CmdResetHard // Text = commit id
    CmdResetSoft
    CmdStashApply
    CmdStashPop

    // Menu openers: pure mode switches.
    CmdDiffMenu
    CmdPullMenu
    CmdPushMenu
    CmdBranchMenu
    CmdStashMenu
    CmdResetMenu

    // Diff scopes.
    CmdDiffStaged
    CmdDiffTracked
    CmdDiffAll
    CmdDiffFile // cursor target

    // Wizard flow. Start commands come from a transfer menu selection and
    // carry the chosen target kind; WizardInput carries one collected field.
    CmdPushStart
    CmdPullStart
    CmdWizardInput

    // Prompt openers and selectors.
    CmdBranchPrompt // Branch = checkout|create|delete
    CmdResetSelect  // Hard flag; uses the commit under the cursor when present

    // Tutorial toggles.
    CmdTutorialOpen
    CmdTutorialClose

    // Meta.
    CmdClear
    CmdQuit
)

// Command is one parsed user intent with its payload.
type Command struct {
    Kind     CommandKind
    OnScreen bool
    Text     string // message, branch name, commit id, or wizard field value
    Target   TargetKind
    Branch   BranchAction
    Hard     bool
}

// BranchAction selects which branch operation a prompt collects a name for.
type BranchAction int

const (
    BranchCheckout BranchAction = iota
    BranchCreate
    BranchDelete
)
