package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/interpretive-systems/gitcue/internal/core"
	"github.com/interpretive-systems/gitcue/internal/gitx"
)

func baseModelForTest() model {
	return model{
		width:  80,
		height: 24,
		sess: core.Session{
			Head:      "main",
			Upstream:  "origin/main",
			Push:      "origin/main",
			Untracked: []string{"new.txt"},
			Tracked:   []string{"mod.txt"},
			Staged:    []string{"idx.txt"},
			Commits: []gitx.Commit{
				{Hash: "abc1234", Subject: "latest change"},
			},
			Mode: core.Base,
		},
	}
}

func TestView_BaseRender(t *testing.T) {
	m := baseModelForTest()
	plain := ansi.Strip(m.View())

	if !strings.HasPrefix(plain, "gitcue | main") {
		t.Fatalf("unexpected header: %q", strings.SplitN(plain, "\n", 2)[0])
	}
	for _, want := range []string{
		"Untracked files:", "new.txt",
		"Modified files:", "mod.txt",
		"Staged files:", "idx.txt",
		"HEAD:     main",
		"Upstream: origin/main",
		"Recent commits:", "abc1234 latest change",
		"? help   q quit",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("missing %q in view", want)
		}
	}
	// Cursor marker on the first line.
	if !strings.Contains(plain, "> Untracked files:") {
		t.Errorf("missing cursor marker, got: %q", strings.SplitN(plain, "\n", 4)[2])
	}
}

func TestView_MenuOverlays(t *testing.T) {
	m := baseModelForTest()
	m.sess.Mode = core.Mode{Kind: core.ModeDiffMenu}
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "Diff — s: staged") {
		t.Fatalf("diff menu overlay missing")
	}

	m.sess.Mode = core.Mode{Kind: core.ModePushWizard, Wizard: core.WizardState{Stage: core.StageMenu}}
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "Push — r: configured remote") {
		t.Fatalf("push menu overlay missing")
	}

	m.sess.Mode = core.Mode{Kind: core.ModeResult, Result: "Everything up-to-date\n"}
	plain := ansi.Strip(m.View())
	if !strings.Contains(plain, "Result (enter/esc: close)") || !strings.Contains(plain, "Everything up-to-date") {
		t.Fatalf("result overlay missing: %q", plain)
	}
}

func TestView_ResultCapsLongOutput(t *testing.T) {
	m := baseModelForTest()
	m.sess.Mode = core.Mode{Kind: core.ModeResult, Result: strings.Repeat("line\n", 40)}
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "… and more") {
		t.Fatalf("long result not capped")
	}
}

func TestView_BottomBarShowsRefreshTime(t *testing.T) {
	m := baseModelForTest()
	m.lastRefresh = time.Date(2026, 8, 23, 12, 34, 56, 0, time.UTC)
	if plain := ansi.Strip(m.View()); !strings.Contains(plain, "refreshed: 12:34:56") {
		t.Fatalf("refresh timestamp missing from bottom bar")
	}
}

func TestOnScreen_Bounds(t *testing.T) {
	m := baseModelForTest()
	m.height = 12 // small window forces scrolling

	// Cursor at top of window: up must scroll, not move.
	m.sess.Cursor = 3
	m.offset = 3
	if m.onScreen(core.CmdUp) {
		t.Fatal("up at window top should be off-screen")
	}
	m.offset = 0
	if !m.onScreen(core.CmdUp) {
		t.Fatal("up inside window should be on-screen")
	}

	// Cursor on the last visible row: down must scroll.
	m.sess.Cursor = m.offset + m.contentHeight() - 1
	if m.onScreen(core.CmdDown) {
		t.Fatal("down at window bottom should be off-screen")
	}
	// At the very end of the list the engine clamps instead.
	m.sess.Cursor = core.MaxCursor(m.sess)
	if !m.onScreen(core.CmdDown) {
		t.Fatal("down at list end should stay on-screen")
	}
}

func TestDispatch_QuitFlow(t *testing.T) {
	m := baseModelForTest()
	m.engine = core.NewEngine(nil)
	_, cmd := m.dispatch(core.Command{Kind: core.CmdQuit})
	if cmd == nil {
		t.Fatal("quit should produce a tea.Quit command")
	}
}
