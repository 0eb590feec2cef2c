// Package snapshot checks out the code state a run was recorded against and
// restores the working tree afterwards. It is a safety-guarded convenience
// wrapper around git: local changes are stashed before the checkout and
// popped on restore, every step is user-confirmed upstream, and a failure
// leaves the tree exactly where git left it, reported verbatim.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// stashMarker tags the stash created before a snapshot checkout so restore
// can find it again.
const stashMarker = "wvtrace-snapshot"

// returnFile, under the git dir, records the branch to return to and
// whether a stash was pushed. It exists only between Restore and
// RestoreCurrent.
const returnFile = "wvtrace_return"

// ErrNoSnapshot is returned when a run carries no provenance to restore.
var ErrNoSnapshot = errors.New("run has no recorded snapshot commit")

// ErrNotRestoring is returned by RestoreCurrent when no snapshot checkout
// is in effect.
var ErrNotRestoring = errors.New("no snapshot checkout to restore from")

// Client runs git against one repository root.
type Client struct {
	root string

	// run executes git with the given arguments, returning trimmed stdout.
	// Swappable in tests.
	run func(ctx context.Context, args ...string) (string, error)
}

// NewClient returns a Client for the repository containing root.
func NewClient(root string) *Client {
	c := &Client{root: root}
	c.run = c.git
	return c
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.root
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) gitDir(ctx context.Context) (string, error) {
	dir, err := c.run(ctx, "rev-parse", "--git-dir")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", c.root)
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.root, dir)
	}
	return dir, nil
}

// Restore stashes any local changes (untracked included) and checks out the
// snapshot commit, detached. State outside git (which run the viewer marks
// as restored) must only change when this returns nil.
func (c *Client) Restore(ctx context.Context, commit string) error {
	if commit == "" {
		return ErrNoSnapshot
	}
	gitDir, err := c.gitDir(ctx)
	if err != nil {
		return err
	}
	branch, err := c.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return err
	}
	dirty, err := c.run(ctx, "status", "--porcelain")
	if err != nil {
		return err
	}
	stashed := dirty != ""
	if stashed {
		if _, err := c.run(ctx, "stash", "push", "--include-untracked",
			"-m", stashMarker+":"+branch); err != nil {
			return err
		}
	}
	if _, err := c.run(ctx, "checkout", commit); err != nil {
		if stashed {
			// Undo the stash so a failed checkout leaves the tree untouched.
			if _, popErr := c.run(ctx, "stash", "pop"); popErr != nil {
				return fmt.Errorf("%w (and stash pop failed: %v)", err, popErr)
			}
		}
		return err
	}
	state := branch + "\n"
	if stashed {
		state += "stashed\n"
	}
	if err := os.WriteFile(filepath.Join(gitDir, returnFile), []byte(state), 0o644); err != nil {
		return fmt.Errorf("record return point: %w", err)
	}
	return nil
}

// RestoreCurrent returns to the branch recorded by Restore and pops the
// snapshot stash when one was pushed.
func (c *Client) RestoreCurrent(ctx context.Context) error {
	gitDir, err := c.gitDir(ctx)
	if err != nil {
		return err
	}
	statePath := filepath.Join(gitDir, returnFile)
	data, err := os.ReadFile(statePath)
	if err != nil {
		return ErrNotRestoring
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	branch := lines[0]
	if branch == "" || branch == "HEAD" {
		return fmt.Errorf("return point does not name a branch")
	}
	if _, err := c.run(ctx, "checkout", branch); err != nil {
		return err
	}
	if len(lines) > 1 && lines[1] == "stashed" {
		ref, err := c.findStash(ctx)
		if err != nil {
			return err
		}
		if _, err := c.run(ctx, "stash", "pop", ref); err != nil {
			return err
		}
	}
	return os.Remove(statePath)
}

// findStash locates the marker stash, newest first.
func (c *Client) findStash(ctx context.Context) (string, error) {
	out, err := c.run(ctx, "stash", "list", "--format=%gd %gs")
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, stashMarker+":") {
			continue
		}
		name, _, ok := strings.Cut(line, " ")
		if ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("snapshot stash not found")
}
