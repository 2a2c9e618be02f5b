package core

// LineKind classifies one display line for cursor targeting.
type LineKind int

const (
    LineHeader LineKind = iota
    LineBlank
    LineUntracked
    LineTracked
    LineStaged
    LineHead
    LineUpstream
    LinePush
    LineCommit
    LineHelp
)

// Line is one row of the rendered session. Path and Hash carry the operand
// for cursor-targeted actions.
type Line struct {
    Kind LineKind
    Text string
    Path string
    Hash string
}

// Lines flattens the session into the exact display list the presentation
// layer renders. Cursor-targeted actions index into this same list, so the
// "what is under the cursor" predicate can never drift from what is drawn —
// in particular the commit-row offset follows the actual history length.
func Lines(s Session) []Line {
    out := make([]Line, 0, 16+len(s.Untracked)+len(s.Tracked)+len(s.Staged)+len(s.Commits))

    out = append(out, Line{Kind: LineHeader, Text: "Untracked files:"})
    for _, p := range s.Untracked {
        out = append(out, Line{Kind: LineUntracked, Text: "  " + p, Path: p})
    }
    out = append(out, Line{Kind: LineHeader, Text: "Modified files:"})
    for _, p := range s.Tracked {
        out = append(out, Line{Kind: LineTracked, Text: "  " + p, Path: p})
    }
    out = append(out, Line{Kind: LineHeader, Text: "Staged files:"})
    for _, p := range s.Staged {
        out = append(out, Line{Kind: LineStaged, Text: "  " + p, Path: p})
    }

    out = append(out, Line{Kind: LineBlank})
    out = append(out, Line{Kind: LineHead, Text: "HEAD:     " + s.Head})
    out = append(out, Line{Kind: LineUpstream, Text: "Upstream: " + s.Upstream})
    out = append(out, Line{Kind: LinePush, Text: "Push:     " + s.Push})

    out = append(out, Line{Kind: LineBlank})
    out = append(out, Line{Kind: LineHeader, Text: "Recent commits:"})
    for _, c := range s.Commits {
        out = append(out, Line{Kind: LineCommit, Text: "  " + c.Hash + " " + c.Subject, Hash: c.Hash})
    }

    out = append(out, Line{Kind: LineBlank})
    out = append(out, Line{Kind: LineHelp, Text: "? help   q quit"})
    return out
}

// MaxCursor is the last valid cursor position, derived from the rendered
// list length rather than a fixed constant.
func MaxCursor(s Session) int {
    return len(Lines(s)) - 1
}

// Target resolves the line under the cursor.
func Target(s Session) Line {
    lines := Lines(s)
    if s.Cursor < 0 || s.Cursor >= len(lines) {
        return Line{Kind: LineBlank}
    }
    return lines[s.Cursor]
}
