package core

import (
    "fmt"
    "strings"

    "github.com/interpretive-systems/gitcue/internal/gitx"
)

// Flow is the loop-control result of a transition: keep going or unwind to
// the driver for cleanup. Quit is a value, not a panic.
type Flow int

const (
    FlowContinue Flow = iota
    FlowQuit
)

// Engine applies commands to sessions against an injected repository. It is
// the only component that calls the facade.
type Engine struct {
    repo gitx.Repo
}

// NewEngine returns an engine bound to the given repository.
func NewEngine(repo gitx.Repo) *Engine {
    return &Engine{repo: repo}
}

// UpdateMode pre-adjusts the mode for commands whose Exec branch depends on
// already being in the right context: commit entry and wizard (re-)entry.
// Every other command leaves the mode for Exec to decide.
func (e *Engine) UpdateMode(s Session, cmd Command) Session {
    switch cmd.Kind {
    case CmdCommit:
        s.Mode = Mode{Kind: ModeCommitEntry}
    case CmdPushStart:
        s.Mode = Mode{Kind: ModePushWizard, Wizard: WizardState{Stage: StageUser, Target: cmd.Target}}
    case CmdPullStart:
        s.Mode = Mode{Kind: ModePullWizard, Wizard: WizardState{Stage: StageUser, Target: cmd.Target}}
    }
    return s
}

// Exec applies one command, invoking the repository as needed, and returns
// the next session. Effects are fully applied before it returns.
func (e *Engine) Exec(s Session, cmd Command) (Session, Flow) {
    switch cmd.Kind {
    case CmdNone:
        return s, FlowContinue

    case CmdUp:
        if cmd.OnScreen {
            s.Scroll = ScrollNone
            if s.Cursor > 0 {
                s.Cursor--
            }
        } else {
            s.Scroll = ScrollUp
        }
        return s, FlowContinue

    case CmdDown:
        if cmd.OnScreen {
            s.Scroll = ScrollNone
            if s.Cursor < MaxCursor(s) {
                s.Cursor++
            }
        } else {
            s.Scroll = ScrollDown
        }
        return s, FlowContinue

    case CmdStage:
        switch t := Target(s); t.Kind {
        case LineUntracked, LineTracked:
            if err := e.repo.Stage([]string{t.Path}); err != nil {
                return e.showResult(s, err.Error()), FlowContinue
            }
            s = e.refresh(s)
        }
        return s, FlowContinue

    case CmdUnstage:
        if t := Target(s); t.Kind == LineStaged {
            if err := e.repo.Unstage([]string{t.Path}); err != nil {
                return e.showResult(s, err.Error()), FlowContinue
            }
            s = e.refresh(s)
        }
        return s, FlowContinue

    case CmdStageAll:
        paths := append(append([]string{}, s.Untracked...), s.Tracked...)
        if len(paths) > 0 {
            if err := e.repo.Stage(paths); err != nil {
                return e.showResult(s, err.Error()), FlowContinue
            }
            s = e.refresh(s)
        }
        return s, FlowContinue

    case CmdUnstageAll:
        if len(s.Staged) > 0 {
            if err := e.repo.Unstage(s.Staged); err != nil {
                return e.showResult(s, err.Error()), FlowContinue
            }
            s = e.refresh(s)
        }
        return s, FlowContinue

    case CmdCommit:
        // An empty message means the entry mode just opened (or the user
        // submitted nothing): no facade call, session untouched.
        msg := strings.TrimSpace(cmd.Text)
        if msg == "" {
            return s, FlowContinue
        }
        out := e.repo.Commit(msg)
        s = e.refresh(s)
        s.Mode = Mode{Kind: ModeResult, Result: out}
        return s, FlowContinue

    case CmdDiffMenu:
        s.Mode = Mode{Kind: ModeDiffMenu}
        return s, FlowContinue
    case CmdPullMenu:
        s.Mode = Mode{Kind: ModePullWizard, Wizard: WizardState{Stage: StageMenu}}
        return s, FlowContinue
    case CmdPushMenu:
        s.Mode = Mode{Kind: ModePushWizard, Wizard: WizardState{Stage: StageMenu}}
        return s, FlowContinue
    case CmdBranchMenu:
        s.Mode = Mode{Kind: ModeBranchMenu}
        return s, FlowContinue
    case CmdStashMenu:
        s.Mode = Mode{Kind: ModeStashMenu}
        return s, FlowContinue
    case CmdResetMenu:
        s.Mode = Mode{Kind: ModeResetMenu}
        return s, FlowContinue

    case CmdDiffTracked:
        return e.showResult(s, e.repo.Diff()), FlowContinue
    case CmdDiffStaged:
        return e.showResult(s, e.diffStaged(s)), FlowContinue
    case CmdDiffAll:
        return e.showResult(s, e.diffAll(s)), FlowContinue
    case CmdDiffFile:
        return e.execDiffFile(s), FlowContinue

    case CmdPushStart, CmdPullStart:
        // UpdateMode already placed the session in the wizard with a fresh
        // state; collection begins with the user field.
        return s, FlowContinue

    case CmdWizardInput:
        return e.execWizardInput(s, cmd.Text), FlowContinue

    case CmdBranchPrompt:
        s.Mode = Mode{Kind: ModeBranchPrompt, Branch: cmd.Branch}
        return s, FlowContinue

    case CmdCheckout:
        return e.execBranch(s, cmd.Text, e.repo.Checkout), FlowContinue
    case CmdCreateBranch:
        return e.execBranch(s, cmd.Text, e.repo.CreateBranch), FlowContinue
    case CmdDeleteBranch:
        return e.execBranch(s, cmd.Text, e.repo.DeleteBranch), FlowContinue

    case CmdResetSelect:
        return e.execResetSelect(s, cmd.Hard), FlowContinue
    case CmdResetHard:
        return e.execReset(s, cmd.Text, true), FlowContinue
    case CmdResetSoft:
        return e.execReset(s, cmd.Text, false), FlowContinue

    case CmdStashApply:
        out := e.repo.StashApply()
        s = e.refresh(s)
        s.Mode = Mode{Kind: ModeResult, Result: out}
        return s, FlowContinue
    case CmdStashPop:
        out := e.repo.StashPop()
        s = e.refresh(s)
        s.Mode = Mode{Kind: ModeResult, Result: out}
        return s, FlowContinue

    case CmdTutorialOpen:
        // Result display has no tutorial of its own.
        if s.Mode.Kind != ModeTutorial && s.Mode.Kind != ModeResult {
            s.Mode = Mode{Kind: ModeTutorial, Return: s.Mode.Family()}
        }
        return s, FlowContinue
    case CmdTutorialClose:
        if s.Mode.Kind == ModeTutorial {
            s.Mode = restoreMode(s.Mode.Return)
        }
        return s, FlowContinue

    case CmdClear:
        s.Mode = Base
        s.Scroll = ScrollNone
        if max := MaxCursor(s); s.Cursor > max {
            s.Cursor = max
        }
        return s, FlowContinue

    case CmdQuit:
        return s, FlowQuit
    }
    return s, FlowContinue
}

// showResult puts facade output into the result display.
func (e *Engine) showResult(s Session, out string) Session {
    s.Mode = Mode{Kind: ModeResult, Result: out}
    return s
}

// diffStaged unstages the staged set so a plain diff shows it, then puts
// the index back exactly as it was. A failed restore is appended to the
// output rather than lost.
func (e *Engine) diffStaged(s Session) string {
    staged := append([]string{}, s.Staged...)
    if err := e.repo.Unstage(staged); err != nil {
        return err.Error()
    }
    out := e.repo.Diff()
    if err := e.repo.Stage(staged); err != nil {
        out += "\n" + err.Error()
    }
    return out
}

// diffAll widens the diff to every bucket: staged changes move to the
// worktree side and untracked files get intent-to-add entries, so one plain
// diff covers them all. Both adjustments are rolled back afterwards; restore
// failures are appended to the output.
func (e *Engine) diffAll(s Session) string {
    staged := append([]string{}, s.Staged...)
    untracked := append([]string{}, s.Untracked...)
    if err := e.repo.Unstage(staged); err != nil {
        return err.Error()
    }
    if err := e.repo.StageIntent(untracked); err != nil {
        out := err.Error()
        if err := e.repo.Stage(staged); err != nil {
            out += "\n" + err.Error()
        }
        return out
    }
    out := e.repo.Diff()
    if err := e.repo.Unstage(untracked); err != nil {
        out += "\n" + err.Error()
    }
    if err := e.repo.Stage(staged); err != nil {
        out += "\n" + err.Error()
    }
    return out
}

func (e *Engine) execDiffFile(s Session) Session {
    t := Target(s)
    var out string
    switch t.Kind {
    case LineUntracked:
        if err := e.repo.StageIntent([]string{t.Path}); err != nil {
            return e.showResult(s, err.Error())
        }
        out = e.repo.DiffPath(t.Path)
        if err := e.repo.Unstage([]string{t.Path}); err != nil {
            out += "\n" + err.Error()
        }
    case LineStaged:
        if err := e.repo.Unstage([]string{t.Path}); err != nil {
            return e.showResult(s, err.Error())
        }
        out = e.repo.DiffPath(t.Path)
        if err := e.repo.Stage([]string{t.Path}); err != nil {
            out += "\n" + err.Error()
        }
    case LineTracked:
        out = e.repo.DiffPath(t.Path)
    default:
        return s
    }
    return e.showResult(s, out)
}

// execWizardInput folds one collected field into the active wizard. Calling
// it outside a wizard mode is a programmer error in the driver.
func (e *Engine) execWizardInput(s Session, text string) Session {
    if s.Mode.Kind != ModePushWizard && s.Mode.Kind != ModePullWizard {
        panic(fmt.Sprintf("wizard input in mode %d", s.Mode.Kind))
    }
    st := s.Mode.Wizard
    text = strings.TrimSpace(text)

    // Submitting nothing abandons collection back to the menu; the
    // operation is never dispatched on a partial state.
    if text == "" {
        s.Mode.Wizard = WizardState{Stage: StageMenu}
        return s
    }

    switch st.Stage {
    case StageUser:
        st.User = text
        st.Stage = StageSecret
    case StageSecret:
        st.Secret = text
        if st.Target == TargetManual {
            st.Stage = StageTarget
        } else {
            st.Stage = StageReady
        }
    case StageTarget:
        st.Ref = text
        st.Stage = StageReady
    default:
        panic(fmt.Sprintf("wizard input at stage %d", st.Stage))
    }

    if st.Stage != StageReady {
        s.Mode.Wizard = st
        return s
    }

    target := st.Ref
    switch st.Target {
    case TargetRemote:
        target = "" // facade resolves the configured remote
    case TargetBranch:
        target = s.Head
    }
    var out string
    if s.Mode.Kind == ModePushWizard {
        out = e.repo.Push(st.User, st.Secret, target)
    } else {
        out = e.repo.Pull(st.User, st.Secret, target)
    }
    s = e.refresh(s)
    s.Mode = Mode{Kind: ModeResult, Result: out}
    return s
}

func (e *Engine) execBranch(s Session, name string, op func(string) string) Session {
    name = strings.TrimSpace(name)
    if name == "" {
        s.Mode = Mode{Kind: ModeBranchMenu}
        return s
    }
    text := op(name)
    s = e.refresh(s)
    s.Mode = Mode{Kind: ModeResult, Result: text}
    return s
}

// execResetSelect acts on the commit under the cursor when there is one;
// otherwise it opens the commit-id prompt.
func (e *Engine) execResetSelect(s Session, hard bool) Session {
    if t := Target(s); t.Kind == LineCommit {
        return e.execReset(s, t.Hash, hard)
    }
    s.Mode = Mode{Kind: ModeResetPrompt, Hard: hard}
    return s
}

func (e *Engine) execReset(s Session, commit string, hard bool) Session {
    commit = strings.TrimSpace(commit)
    if commit == "" {
        s.Mode = Mode{Kind: ModeResetMenu}
        return s
    }
    var out string
    if hard {
        out = e.repo.ResetHard(commit)
    } else {
        out = e.repo.ResetSoft(commit)
    }
    s = e.refresh(s)
    s.Mode = Mode{Kind: ModeResult, Result: out}
    return s
}

// refresh re-queries the repository, preserving cursor and mode. A cursor
// left past the shrunken list is clamped so targeting stays valid.
func (e *Engine) refresh(s Session) Session {
    snap, err := e.repo.Snapshot()
    if err != nil {
        return s
    }
    s.apply(snap)
    if max := MaxCursor(s); s.Cursor > max {
        s.Cursor = max
    }
    return s
}

// restoreMode rebuilds the mode a tutorial overlay returns to. Wizards can
// only host a tutorial from their menu step, so the menu state is enough.
func restoreMode(kind ModeKind) Mode {
    switch kind {
    case ModePushWizard, ModePullWizard:
        return Mode{Kind: kind, Wizard: WizardState{Stage: StageMenu}}
    default:
        return Mode{Kind: kind}
    }
}
