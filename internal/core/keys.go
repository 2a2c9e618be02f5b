package core

// Interpret maps one key to a Command for the session's current mode
// family. Mode-specific bindings win; anything they leave unbound falls
// through to the base table, and keys unknown even there are a no-op, so
// every table is total. Text-collecting modes never reach Interpret — the
// driver gathers a full line and builds the command itself.
func Interpret(m Mode, key string) Command {
    if m.Kind == ModeTutorial {
        return tutorialKeys(key)
    }
    var cmd Command
    var ok bool
    switch m.Family() {
    case ModeDiffMenu:
        cmd, ok = diffKeys(key)
    case ModePullWizard:
        cmd, ok = pullKeys(key)
    case ModePushWizard:
        cmd, ok = pushKeys(key)
    case ModeBranchMenu:
        cmd, ok = branchKeys(key)
    case ModeStashMenu:
        cmd, ok = stashKeys(key)
    case ModeResetMenu:
        cmd, ok = resetKeys(key)
    case ModeResult:
        cmd, ok = resultKeys(key)
    }
    if ok {
        return cmd
    }
    return baseKeys(key)
}

func baseKeys(key string) Command {
    switch key {
    case "k", "up":
        return Command{Kind: CmdUp}
    case "j", "down":
        return Command{Kind: CmdDown}
    case "s":
        return Command{Kind: CmdStage}
    case "u":
        return Command{Kind: CmdUnstage}
    case "a":
        return Command{Kind: CmdStageAll}
    case "A":
        return Command{Kind: CmdUnstageAll}
    case "c":
        return Command{Kind: CmdCommit}
    case "d":
        return Command{Kind: CmdDiffMenu}
    case "p":
        return Command{Kind: CmdPullMenu}
    case "P":
        return Command{Kind: CmdPushMenu}
    case "b":
        return Command{Kind: CmdBranchMenu}
    case "t":
        return Command{Kind: CmdStashMenu}
    case "r":
        return Command{Kind: CmdResetMenu}
    case "?":
        return Command{Kind: CmdTutorialOpen}
    case "esc":
        return Command{Kind: CmdClear}
    case "q", "ctrl+c":
        return Command{Kind: CmdQuit}
    }
    return Command{Kind: CmdNone}
}

func diffKeys(key string) (Command, bool) {
    switch key {
    case "s":
        return Command{Kind: CmdDiffStaged}, true
    case "t":
        return Command{Kind: CmdDiffTracked}, true
    case "a":
        return Command{Kind: CmdDiffAll}, true
    case "f":
        return Command{Kind: CmdDiffFile}, true
    }
    return Command{}, false
}

func pullKeys(key string) (Command, bool) {
    cmd, ok := transferKeys(key)
    if ok {
        cmd.Kind = CmdPullStart
    }
    return cmd, ok
}

func pushKeys(key string) (Command, bool) {
    return transferKeys(key)
}

func transferKeys(key string) (Command, bool) {
    switch key {
    case "r":
        return Command{Kind: CmdPushStart, Target: TargetRemote}, true
    case "b":
        return Command{Kind: CmdPushStart, Target: TargetBranch}, true
    case "m":
        return Command{Kind: CmdPushStart, Target: TargetManual}, true
    }
    return Command{}, false
}

func branchKeys(key string) (Command, bool) {
    switch key {
    case "c":
        return Command{Kind: CmdBranchPrompt, Branch: BranchCheckout}, true
    case "n":
        return Command{Kind: CmdBranchPrompt, Branch: BranchCreate}, true
    case "d":
        return Command{Kind: CmdBranchPrompt, Branch: BranchDelete}, true
    }
    return Command{}, false
}

func stashKeys(key string) (Command, bool) {
    switch key {
    case "a":
        return Command{Kind: CmdStashApply}, true
    case "p":
        return Command{Kind: CmdStashPop}, true
    }
    return Command{}, false
}

func resetKeys(key string) (Command, bool) {
    switch key {
    case "h":
        return Command{Kind: CmdResetSelect, Hard: true}, true
    case "s":
        return Command{Kind: CmdResetSelect, Hard: false}, true
    }
    return Command{}, false
}

func resultKeys(key string) (Command, bool) {
    switch key {
    case "enter", "esc":
        return Command{Kind: CmdClear}, true
    }
    return Command{}, false
}

// tutorialKeys closes on the toggle key; navigation and quit keep their
// base behavior underneath the overlay.
func tutorialKeys(key string) Command {
    switch key {
    case "?", "esc", "enter":
        return Command{Kind: CmdTutorialClose}
    }
    cmd := baseKeys(key)
    switch cmd.Kind {
    case CmdUp, CmdDown, CmdQuit:
        return cmd
    }
    return Command{Kind: CmdNone}
}
