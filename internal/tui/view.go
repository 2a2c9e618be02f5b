package tui

import (
    "strings"

    "github.com/charmbracelet/lipgloss"
    "github.com/charmbracelet/x/ansi"
    "github.com/interpretive-systems/gitcue/internal/core"
)

var (
    boldStyle   = lipgloss.NewStyle().Bold(true)
    faintStyle  = lipgloss.NewStyle().Faint(true)
    cursorStyle = lipgloss.NewStyle().Reverse(true)
    headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func (m model) View() string {
    if m.width == 0 || m.height == 0 {
        return "Loading..."
    }

    top := "gitcue | " + m.sess.Head
    hr := faintStyle.Render(strings.Repeat("─", m.width))

    overlay := m.overlayLines(m.width)
    contentHeight := m.contentHeight()
    body := m.bodyLines(contentHeight)

    var b strings.Builder
    b.WriteString(padToWidth(top, m.width))
    b.WriteByte('\n')
    b.WriteString(hr)
    b.WriteByte('\n')
    for i := 0; i < contentHeight; i++ {
        if i < len(body) {
            b.WriteString(padToWidth(body[i], m.width))
        }
        b.WriteByte('\n')
    }
    for _, line := range overlay {
        b.WriteString(padToWidth(line, m.width))
        b.WriteByte('\n')
    }
    b.WriteString(faintStyle.Render(strings.Repeat("─", m.width)))
    b.WriteByte('\n')
    b.WriteString(m.bottomBar())
    return b.String()
}

// bodyLines renders the visible slice of the session display list with the
// cursor marked. The list itself comes from core so targeting and drawing
// can never disagree.
func (m model) bodyLines(max int) []string {
    lines := core.Lines(m.sess)
    out := make([]string, 0, max)
    for i := m.offset; i < len(lines) && len(out) < max; i++ {
        l := lines[i]
        marker := "  "
        if i == m.sess.Cursor {
            marker = "> "
        }
        text := l.Text
        switch l.Kind {
        case core.LineHeader:
            text = headerStyle.Render(text)
        case core.LineHelp:
            text = faintStyle.Render(text)
        }
        if i == m.sess.Cursor {
            text = cursorStyle.Render(l.Text)
        }
        out = append(out, marker+text)
    }
    return out
}

// overlayLines renders the mode-specific panel above the bottom bar:
// menus, prompts, tutorials, and command results.
func (m model) overlayLines(width int) []string {
    var lines []string
    rule := func() {
        lines = append(lines, faintStyle.Render(strings.Repeat("─", width)))
    }
    title := func(s string) {
        lines = append(lines, boldStyle.Render(s))
    }

    switch m.sess.Mode.Kind {
    case core.ModeBase:
        return nil
    case core.ModeCommitEntry, core.ModeBranchPrompt, core.ModeResetPrompt:
        rule()
        title(m.promptTitle())
        lines = append(lines, m.input.View())
    case core.ModeDiffMenu:
        rule()
        title("Diff — s: staged  t: tracked  a: all  f: file under cursor  esc: back")
    case core.ModePushWizard, core.ModePullWizard:
        rule()
        verb := "Push"
        if m.sess.Mode.Kind == core.ModePullWizard {
            verb = "Pull"
        }
        if m.sess.Mode.Wizard.Stage == core.StageMenu {
            title(verb + " — r: configured remote  b: current branch  m: manual target  esc: back")
        } else {
            title(verb + " — " + m.promptLabel())
            lines = append(lines, m.input.View())
        }
    case core.ModeBranchMenu:
        rule()
        title("Branch — c: checkout  n: create  d: delete  esc: back")
    case core.ModeStashMenu:
        rule()
        title("Stash — a: apply  p: pop  esc: back")
    case core.ModeResetMenu:
        rule()
        title("Reset — h: hard  s: soft  (uses commit under cursor, else prompts)  esc: back")
    case core.ModeResult:
        rule()
        title("Result (enter/esc: close)")
        lines = append(lines, resultLines(m.sess.Mode.Result)...)
    case core.ModeTutorial:
        rule()
        title("Keys — ? or esc to close")
        lines = append(lines, tutorialLines(m.sess.Mode.Return)...)
    }
    return lines
}

func (m model) promptTitle() string {
    switch m.sess.Mode.Kind {
    case core.ModeCommitEntry:
        return "Commit — enter: commit, esc: cancel"
    case core.ModeBranchPrompt:
        return "Branch — enter: run, esc: cancel"
    case core.ModeResetPrompt:
        return "Reset — enter: run, esc: cancel"
    }
    return ""
}

// resultLines caps command output in the overlay, like long pull output.
func resultLines(out string) []string {
    trimmed := strings.Split(strings.TrimRight(out, "\n"), "\n")
    const max = 12
    lines := make([]string, 0, max+1)
    for i, l := range trimmed {
        if i >= max {
            lines = append(lines, faintStyle.Render("… and more"))
            break
        }
        lines = append(lines, l)
    }
    if len(lines) == 1 && lines[0] == "" {
        lines[0] = faintStyle.Render("(no output)")
    }
    return lines
}

func tutorialLines(family core.ModeKind) []string {
    base := []string{
        "j/k or arrows  Move cursor",
        "s / u          Stage / unstage file under cursor",
        "a / A          Stage all / unstage all",
        "c              Commit",
        "d              Diff menu",
        "p / P          Pull / push",
        "b              Branch menu",
        "t              Stash menu",
        "r              Reset menu",
        "esc            Back to status",
        "q              Quit",
    }
    switch family {
    case core.ModeDiffMenu:
        return append([]string{
            "s              Diff staged changes",
            "t              Diff tracked changes",
            "a              Diff everything",
            "f              Diff file under cursor",
        }, base...)
    case core.ModePullWizard, core.ModePushWizard:
        return append([]string{
            "r              Use the configured remote",
            "b              Use the current branch",
            "m              Enter a target manually",
        }, base...)
    case core.ModeBranchMenu:
        return append([]string{
            "c              Checkout a branch",
            "n              Create a branch",
            "d              Delete a branch",
        }, base...)
    case core.ModeStashMenu:
        return append([]string{
            "a              Apply the stash",
            "p              Pop the stash",
        }, base...)
    case core.ModeResetMenu:
        return append([]string{
            "h              Hard reset",
            "s              Soft reset",
        }, base...)
    }
    return base
}

func (m model) bottomBar() string {
    left := faintStyle.Render("? help   q quit")
    right := faintStyle.Render(modeLabel(m.sess.Mode) + "  refreshed: " + m.lastRefresh.Format("15:04:05"))
    w := m.width
    rightW := lipgloss.Width(right)
    if rightW >= w {
        return ansi.Truncate(right, w, "…")
    }
    avail := w - rightW - 1
    if lipgloss.Width(left) > avail {
        left = ansi.Truncate(left, avail, "…")
    } else if lipgloss.Width(left) < avail {
        left = left + strings.Repeat(" ", avail-lipgloss.Width(left))
    }
    return left + " " + right
}

func modeLabel(m core.Mode) string {
    switch m.Kind {
    case core.ModeBase:
        return "status"
    case core.ModeCommitEntry:
        return "commit"
    case core.ModeDiffMenu:
        return "diff"
    case core.ModePushWizard:
        return "push"
    case core.ModePullWizard:
        return "pull"
    case core.ModeBranchMenu, core.ModeBranchPrompt:
        return "branch"
    case core.ModeStashMenu:
        return "stash"
    case core.ModeResetMenu, core.ModeResetPrompt:
        return "reset"
    case core.ModeResult:
        return "result"
    case core.ModeTutorial:
        return "help"
    }
    return ""
}

func padToWidth(s string, w int) string {
    width := lipgloss.Width(s)
    if width == w {
        return s
    }
    if width < w {
        return s + strings.Repeat(" ", w-width)
    }
    return ansi.Truncate(s, w, "…")
}
