package gitutil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

func run(ctx context.Context, dir string, timeout time.Duration, name string, args ...string) (string, error) {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx2, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	outStr := stdout.String()
	if err != nil {
		if outStr == "" {
			outStr = stderr.String()
		} else {
			outStr = outStr + "\n" + stderr.String()
		}
		return outStr, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return outStr, nil
}

// ShallowClone clones repository at the given branch with limited
// history depth. Audited repos only need the tip of the default branch.
func ShallowClone(repoURL, destDir, branch string, depth int, timeout time.Duration) error {
	if branch == "" {
		branch = "main"
	}
	args := []string{"clone", "--depth", fmt.Sprintf("%d", depth), "--single-branch", "--branch", branch, repoURL, destDir}
	_, err := run(context.Background(), "", timeout, "git", args...)
	return err
}

// FetchAndCheckoutLatest updates an existing repository to the latest
// commit on branch so re-audits see current code.
func FetchAndCheckoutLatest(repoDir, branch string, depth int, timeout time.Duration) error {
	if branch == "" {
		branch = "main"
	}
	_, _ = run(context.Background(), repoDir, timeout, "git", "fetch", "--depth", fmt.Sprintf("%d", depth), "origin", branch)
	// Checkout the branch, creating it against origin if needed.
	if _, err := run(context.Background(), repoDir, timeout, "git", "checkout", branch); err != nil {
		_, _ = run(context.Background(), repoDir, timeout, "git", "checkout", "-B", branch, "origin/"+branch)
	}
	_, err := run(context.Background(), repoDir, timeout, "git", "reset", "--hard", "origin/"+branch)
	return err
}
