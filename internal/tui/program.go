package tui

import (
    "time"

    "github.com/charmbracelet/bubbles/textinput"
    tea "github.com/charmbracelet/bubbletea"
    "github.com/interpretive-systems/gitcue/internal/core"
    "github.com/interpretive-systems/gitcue/internal/gitx"
)

// model is the driver loop state: the session owned by the loop plus pure
// view concerns (dimensions, scroll offset, text input).
type model struct {
    engine *core.Engine
    sess   core.Session

    width  int
    height int
    offset int // first visible display line

    input       textinput.Model
    lastRefresh time.Time
}

// Run builds the initial session and drives the program until quit. The
// terminal is restored on every exit path, including errors.
func Run(repo gitx.Repo) error {
    sess, err := core.NewSession(repo)
    if err != nil {
        return err
    }
    m := model{engine: core.NewEngine(repo), sess: sess, lastRefresh: time.Now()}
    p := tea.NewProgram(m, tea.WithAltScreen())
    if _, err := p.Run(); err != nil {
        return err
    }
    return nil
}

func (m model) Init() tea.Cmd {
    return nil
}

// Update is one turn of the loop: interpret, pre-adjust mode, execute.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    switch msg := msg.(type) {
    case tea.WindowSizeMsg:
        m.width = msg.Width
        m.height = msg.Height
        m.clampOffset()
        return m, nil
    case tea.KeyMsg:
        if m.sess.Mode.CollectsText() {
            return m.handleTextKeys(msg)
        }
        cmd := core.Interpret(m.sess.Mode, msg.String())
        switch cmd.Kind {
        case core.CmdUp, core.CmdDown:
            cmd.OnScreen = m.onScreen(cmd.Kind)
        }
        return m.dispatch(cmd)
    }
    return m, nil
}

// handleTextKeys collects one line of free text for the active prompt.
// Escape cancels, enter submits; everything else feeds the input.
func (m model) handleTextKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
    switch msg.String() {
    case "ctrl+c":
        return m.dispatch(core.Command{Kind: core.CmdQuit})
    case "esc":
        // Prompts owned by a menu abandon back to it; the engine treats an
        // empty submission exactly that way. Commit entry clears to base.
        switch m.sess.Mode.Kind {
        case core.ModePushWizard, core.ModePullWizard, core.ModeBranchPrompt, core.ModeResetPrompt:
            return m.dispatch(m.commandForInput(""))
        }
        return m.dispatch(core.Command{Kind: core.CmdClear})
    case "enter":
        return m.dispatch(m.commandForInput(m.input.Value()))
    }
    var cmd tea.Cmd
    m.input, cmd = m.input.Update(msg)
    return m, cmd
}

// commandForInput turns a submitted line into the command the active
// prompt collects.
func (m model) commandForInput(text string) core.Command {
    switch m.sess.Mode.Kind {
    case core.ModeCommitEntry:
        return core.Command{Kind: core.CmdCommit, Text: text}
    case core.ModeBranchPrompt:
        kind := core.CmdCheckout
        switch m.sess.Mode.Branch {
        case core.BranchCreate:
            kind = core.CmdCreateBranch
        case core.BranchDelete:
            kind = core.CmdDeleteBranch
        }
        return core.Command{Kind: kind, Text: text}
    case core.ModeResetPrompt:
        kind := core.CmdResetSoft
        if m.sess.Mode.Hard {
            kind = core.CmdResetHard
        }
        return core.Command{Kind: kind, Text: text}
    case core.ModePushWizard, core.ModePullWizard:
        return core.Command{Kind: core.CmdWizardInput, Text: text}
    }
    panic("text input outside a collecting mode")
}

func (m model) dispatch(cmd core.Command) (tea.Model, tea.Cmd) {
    m.sess = m.engine.UpdateMode(m.sess, cmd)
    next, flow := m.engine.Exec(m.sess, cmd)
    m.sess = next
    if flow == core.FlowQuit {
        return m, tea.Quit
    }
    switch cmd.Kind {
    case core.CmdNone, core.CmdUp, core.CmdDown:
    default:
        m.lastRefresh = time.Now()
    }
    m.applyScroll()
    m.syncInput()
    return m, nil
}

// applyScroll consumes the session's off-screen indicator by moving the
// viewport instead of the cursor.
func (m *model) applyScroll() {
    switch m.sess.Scroll {
    case core.ScrollUp:
        if m.offset > 0 {
            m.offset--
        }
    case core.ScrollDown:
        m.offset++
    }
    m.sess.Scroll = core.ScrollNone
    m.clampOffset()
}

func (m *model) clampOffset() {
    max := len(core.Lines(m.sess)) - m.contentHeight()
    if max < 0 {
        max = 0
    }
    if m.offset > max {
        m.offset = max
    }
    if m.offset < 0 {
        m.offset = 0
    }
}

// syncInput rebuilds the text input to match the mode. Runs only on
// dispatch, so a fresh field always starts empty with the right prompt
// and echo style while in-progress typing is untouched.
func (m *model) syncInput() {
    if !m.sess.Mode.CollectsText() {
        return
    }
    ti := textinput.New()
    ti.Prompt = "> "
    ti.Placeholder = m.promptLabel()
    if m.wizardStage() == core.StageSecret {
        ti.EchoMode = textinput.EchoPassword
    }
    ti.Focus()
    m.input = ti
}

func (m model) wizardStage() core.WizardStage {
    switch m.sess.Mode.Kind {
    case core.ModePushWizard, core.ModePullWizard:
        return m.sess.Mode.Wizard.Stage
    }
    return core.StageMenu
}

func (m model) promptLabel() string {
    switch m.sess.Mode.Kind {
    case core.ModeCommitEntry:
        return "Commit message"
    case core.ModeBranchPrompt:
        switch m.sess.Mode.Branch {
        case core.BranchCreate:
            return "New branch name"
        case core.BranchDelete:
            return "Branch to delete"
        }
        return "Branch to checkout"
    case core.ModeResetPrompt:
        if m.sess.Mode.Hard {
            return "Commit id (hard reset)"
        }
        return "Commit id (soft reset)"
    case core.ModePushWizard, core.ModePullWizard:
        switch m.sess.Mode.Wizard.Stage {
        case core.StageUser:
            return "Username (empty: back)"
        case core.StageSecret:
            return "Password (empty: back)"
        case core.StageTarget:
            return "Target (empty: back)"
        }
    }
    return ""
}

// onScreen reports whether moving the cursor one step stays inside the
// visible window; when it does not, the engine scrolls instead.
func (m model) onScreen(kind core.CommandKind) bool {
    if m.height == 0 {
        return true
    }
    switch kind {
    case core.CmdUp:
        return m.sess.Cursor == 0 || m.sess.Cursor-1 >= m.offset
    case core.CmdDown:
        if m.sess.Cursor >= core.MaxCursor(m.sess) {
            return true
        }
        return m.sess.Cursor+1 < m.offset+m.contentHeight()
    }
    return true
}

// contentHeight is the body height left after chrome and the active
// overlay. Matches View exactly; keep both in sync.
func (m model) contentHeight() int {
    h := m.height - 4 - len(m.overlayLines(m.width))
    if h < 1 {
        h = 1
    }
    return h
}
