package core

import "github.com/interpretive-systems/gitcue/internal/gitx"

// Scroll tells the presentation layer whether the last navigation landed
// on screen or needs the viewport moved.
type Scroll int

const (
    ScrollNone Scroll = iota
    ScrollUp
    ScrollDown
)

// Session is the mutable-by-replacement record of what the user currently
// sees and is doing. All updates go through the transition engine.
type Session struct {
    Head     string
    Upstream string
    Push     string
    Commits  []gitx.Commit

    Untracked []string
    Tracked   []string
    Staged    []string

    Cursor int // never negative
    Mode   Mode
    Scroll Scroll
}

// NewSession builds the initial session from a full repository snapshot.
func NewSession(repo gitx.Repo) (Session, error) {
    snap, err := repo.Snapshot()
    if err != nil {
        return Session{}, err
    }
    s := Session{Mode: Base}
    s.apply(snap)
    return s, nil
}

func (s *Session) apply(snap gitx.Snapshot) {
    s.Head = snap.Head
    s.Upstream = snap.Upstream
    s.Push = snap.Push
    s.Commits = snap.Commits
    s.Untracked = snap.Untracked
    s.Tracked = snap.Tracked
    s.Staged = snap.Staged
}
