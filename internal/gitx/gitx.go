package gitx

import (
    "errors"
    "fmt"
    "os/exec"
    "strings"
)

// MaxHistory bounds the commit summaries carried in a snapshot.
const MaxHistory = 10

// Commit is one history entry: short hash plus first line of the message.
type Commit struct {
    Hash    string
    Subject string
}

// Snapshot is the full repository view the controller works from.
type Snapshot struct {
    Head     string
    Upstream string
    Push     string
    Commits  []Commit // newest first, at most MaxHistory
    // Disjoint status buckets, except that a path with both a staged and an
    // unstaged change appears in Tracked and Staged.
    Untracked []string
    Tracked   []string
    Staged    []string
}

// Repo is the capability set the transition engine is constructed with.
// Operations returning string yield the underlying command's combined
// output verbatim; failure lines (git's "fatal:" convention) pass through
// as text, never as structured errors.
type Repo interface {
    Snapshot() (Snapshot, error)
    Stage(paths []string) error
    StageIntent(paths []string) error
    Unstage(paths []string) error
    Commit(message string) string
    Diff() string
    DiffPath(path string) string
    Checkout(branch string) string
    CreateBranch(name string) string
    DeleteBranch(name string) string
    ResetHard(commit string) string
    ResetSoft(commit string) string
    StashApply() string
    StashPop() string
    Push(user, secret, target string) string
    Pull(user, secret, target string) string
    Raw(args []string) string
}

// Git runs the real git binary against a repository root.
type Git struct {
    root string
}

// New returns a Git facade rooted at the given repository root.
func New(root string) *Git {
    return &Git{root: root}
}

// RepoRoot resolves the git repository root from a given path (or current dir).
func RepoRoot(path string) (string, error) {
    if path == "" {
        path = "."
    }
    cmd := exec.Command("git", "-C", path, "rev-parse", "--show-toplevel")
    out, err := cmd.Output()
    if err != nil {
        return "", fmt.Errorf("rev-parse: %w", err)
    }
    root := strings.TrimSpace(string(out))
    if root == "" {
        return "", errors.New("empty git root")
    }
    return root, nil
}

// run executes git with combined output. The text is returned even on
// non-zero exit; when git produces nothing at all the error text stands in.
func (g *Git) run(args ...string) string {
    a := append([]string{"-C", g.root}, args...)
    cmd := exec.Command("git", a...)
    out, err := cmd.CombinedOutput()
    if err != nil && len(out) == 0 {
        return "fatal: " + err.Error() + "\n"
    }
    return string(out)
}

func (g *Git) output(args ...string) (string, error) {
    a := append([]string{"-C", g.root}, args...)
    cmd := exec.Command("git", a...)
    out, err := cmd.Output()
    if err != nil {
        return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
    }
    return strings.TrimRight(string(out), "\n"), nil
}

// Snapshot queries refs, history, and status in one pass.
func (g *Git) Snapshot() (Snapshot, error) {
    var s Snapshot

    // symbolic-ref names the branch even before the first commit, where
    // rev-parse on HEAD exits 128. rev-parse covers detached heads.
    head, err := g.output("symbolic-ref", "--short", "HEAD")
    if err != nil {
        head, err = g.output("rev-parse", "--short", "HEAD")
        if err != nil {
            return s, err
        }
    }
    s.Head = head

    // Upstream and push refs are optional; unborn or unconfigured branches
    // simply leave them empty.
    if up, err := g.output("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}"); err == nil {
        s.Upstream = up
    }
    if push, err := g.output("rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{push}"); err == nil {
        s.Push = push
    }

    // History is empty (not an error) before the first commit.
    if log, err := g.output("log", fmt.Sprintf("-%d", MaxHistory), "--pretty=format:%h %s"); err == nil {
        s.Commits = parseLog(log)
    }

    status, err := g.output("status", "--porcelain")
    if err != nil {
        return s, err
    }
    s.Untracked, s.Tracked, s.Staged = parseStatus(status)
    return s, nil
}

func parseLog(out string) []Commit {
    if strings.TrimSpace(out) == "" {
        return nil
    }
    // A failure marker is not history; the check is a literal substring
    // match, nothing smarter.
    if strings.HasPrefix(out, "fatal:") {
        return nil
    }
    lines := strings.Split(out, "\n")
    commits := make([]Commit, 0, len(lines))
    for _, l := range lines {
        hash, subject, _ := strings.Cut(l, " ")
        if hash == "" {
            continue
        }
        commits = append(commits, Commit{Hash: hash, Subject: subject})
    }
    return commits
}

// parseStatus buckets porcelain lines by their XY flag pair:
// "??" untracked; space-then-change tracked; change-then-clean staged;
// both changed lands in tracked and staged.
func parseStatus(out string) (untracked, tracked, staged []string) {
    for _, line := range strings.Split(out, "\n") {
        if len(line) < 4 {
            continue
        }
        x, y := line[0], line[1]
        path := line[3:]
        // Renames report "old -> new"; the new name is the live path.
        if _, after, ok := strings.Cut(path, " -> "); ok {
            path = after
        }
        switch {
        case x == '?':
            untracked = append(untracked, path)
        default:
            if x != ' ' {
                staged = append(staged, path)
            }
            if y != ' ' {
                tracked = append(tracked, path)
            }
        }
    }
    return untracked, tracked, staged
}

// Stage stages the provided file paths, deletions included.
func (g *Git) Stage(paths []string) error {
    if len(paths) == 0 {
        return nil
    }
    args := append([]string{"-C", g.root, "add", "-A", "--"}, paths...)
    cmd := exec.Command("git", args...)
    if out, err := cmd.CombinedOutput(); err != nil {
        return fmt.Errorf("git add: %w: %s", err, string(out))
    }
    return nil
}

// StageIntent records intent-to-add for untracked paths so a plain diff
// includes them. Undone by Unstage.
func (g *Git) StageIntent(paths []string) error {
    if len(paths) == 0 {
        return nil
    }
    args := append([]string{"-C", g.root, "add", "-N", "--"}, paths...)
    cmd := exec.Command("git", args...)
    if out, err := cmd.CombinedOutput(); err != nil {
        return fmt.Errorf("git add -N: %w: %s", err, string(out))
    }
    return nil
}

// Unstage removes the provided paths from the index.
func (g *Git) Unstage(paths []string) error {
    if len(paths) == 0 {
        return nil
    }
    args := append([]string{"-C", g.root, "reset", "-q", "HEAD", "--"}, paths...)
    cmd := exec.Command("git", args...)
    if out, err := cmd.CombinedOutput(); err != nil {
        return fmt.Errorf("git reset: %w: %s", err, string(out))
    }
    return nil
}

// Commit commits the index with the given message.
func (g *Git) Commit(message string) string {
    return g.run("commit", "-m", message)
}

// Diff returns the worktree-vs-index diff.
func (g *Git) Diff() string {
    return g.run("diff", "--no-color", "--text")
}

// DiffPath returns the worktree-vs-index diff for a single path.
func (g *Git) DiffPath(path string) string {
    return g.run("diff", "--no-color", "--text", "--", path)
}

func (g *Git) Checkout(branch string) string {
    return g.run("checkout", branch)
}

func (g *Git) CreateBranch(name string) string {
    return g.run("checkout", "-b", name)
}

func (g *Git) DeleteBranch(name string) string {
    return g.run("branch", "-D", name)
}

func (g *Git) ResetHard(commit string) string {
    return g.run("reset", "--hard", commit)
}

func (g *Git) ResetSoft(commit string) string {
    return g.run("reset", "--soft", commit)
}

func (g *Git) StashApply() string {
    return g.run("stash", "apply")
}

func (g *Git) StashPop() string {
    return g.run("stash", "pop")
}

// Push pushes to target (a remote name, or a refspec pushed to the first
// configured remote). Credentials, when supplied, are injected into an
// https remote URL.
func (g *Git) Push(user, secret, target string) string {
    return g.transfer("push", user, secret, target)
}

// Pull mirrors Push for fetch+merge.
func (g *Git) Pull(user, secret, target string) string {
    return g.transfer("pull", user, secret, target)
}

func (g *Git) transfer(verb, user, secret, target string) string {
    remote := g.firstRemote()
    args := []string{verb}
    switch {
    case target == "" || g.isRemote(target):
        if target != "" {
            remote = target
        }
        args = append(args, g.remoteURL(remote, user, secret))
    default:
        args = append(args, g.remoteURL(remote, user, secret), target)
    }
    return g.run(args...)
}

func (g *Git) firstRemote() string {
    out, err := g.output("remote")
    if err != nil {
        return "origin"
    }
    remotes := strings.Fields(out)
    if len(remotes) == 0 {
        return "origin"
    }
    return remotes[0]
}

func (g *Git) isRemote(name string) bool {
    out, err := g.output("remote")
    if err != nil {
        return false
    }
    for _, r := range strings.Fields(out) {
        if r == name {
            return true
        }
    }
    return false
}

// remoteURL resolves a remote to a pushable URL, splicing user:secret into
// https URLs. Without credentials the remote name itself is used so git's
// own configuration applies.
func (g *Git) remoteURL(remote, user, secret string) string {
    if user == "" {
        return remote
    }
    url, err := g.output("remote", "get-url", remote)
    if err != nil {
        return remote
    }
    rest, ok := strings.CutPrefix(url, "https://")
    if !ok {
        return remote
    }
    return "https://" + user + ":" + secret + "@" + rest
}

// Raw forwards arbitrary arguments to git and returns combined output.
// Used by the pass-through CLI mode; the controller core never calls it.
func (g *Git) Raw(args []string) string {
    return g.run(args...)
}
