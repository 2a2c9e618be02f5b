package cli

import (
	"fmt"
	"os"

	"github.com/interpretive-systems/gitcue/internal/gitx"
	"github.com/interpretive-systems/gitcue/internal/tui"
	"github.com/spf13/cobra"
)

func Execute() error {
	root := &cobra.Command{
		Use:   "gitcue [git args...]",
		Short: "Keyboard-driven controller for a git working copy",
		Long: "Gitcue: a mode-driven TUI over a git working copy. " +
			"With positional arguments, gitcue bypasses the TUI and forwards them to git verbatim.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath := mustGetStringFlag(cmd, "repo")
			repoRoot, err := gitx.RepoRoot(repoPath)
			if err != nil {
				return fmt.Errorf("not a git repo: %w", err)
			}
			repo := gitx.New(repoRoot)
			if len(args) > 0 {
				// Pass-through mode: no session, combined output, exit 0.
				fmt.Print(repo.Raw(args))
				return nil
			}
			return tui.Run(repo)
		},
	}

	root.Flags().StringP("repo", "r", ".", "Path to repository root (default: current dir)")
	// Stop flag parsing at the first positional so git's own flags pass
	// through untouched (gitcue log --oneline).
	root.Flags().SetInterspersed(false)

	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
