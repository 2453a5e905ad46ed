package git

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// validateBaseRef rejects refs that could be interpreted as git flags.
func validateBaseRef(baseRef string) error {
	if baseRef == "" {
		return fmt.Errorf("base ref cannot be empty")
	}
	if strings.HasPrefix(baseRef, "-") {
		return fmt.Errorf("base ref must not start with -: %q", baseRef)
	}
	return nil
}

// GetDiff returns the unified diff between baseRef and the working tree.
// workDir may be empty to use the current directory.
func GetDiff(ctx context.Context, baseRef, workDir string) (string, error) {
	if err := validateBaseRef(baseRef); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "diff", baseRef, "--")
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("git diff failed: %w", err)
	}
	return string(out), nil
}

// ChangedFiles returns the repo-relative paths of files that differ between
// baseRef and the working tree. Deleted files are excluded since there is
// nothing left to review.
func ChangedFiles(ctx context.Context, baseRef, workDir string) ([]string, error) {
	if err := validateBaseRef(baseRef); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, "git", "diff", "--name-only", "--diff-filter=d", baseRef, "--")
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("git diff failed: %w", err)
	}

	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// ReadFileAtRef returns the contents of a file as it exists at the given ref.
func ReadFileAtRef(ctx context.Context, ref, path, workDir string) (string, error) {
	if err := validateBaseRef(ref); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "show", ref+":"+path)
	cmd.Dir = workDir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git show %s:%s failed: %w", ref, path, err)
	}
	return string(out), nil
}

var commitSHARe = regexp.MustCompile(`^[0-9a-fA-F]{7,40}$`)

// IsLikelyCommitSHA reports whether ref looks like an abbreviated or full
// commit SHA rather than a branch name.
func IsLikelyCommitSHA(ref string) bool {
	return commitSHARe.MatchString(ref)
}

// IsRelativeRef reports whether ref points at history relative to the current
// state (HEAD, tilde/caret suffixes, reflog refs, commit SHAs). Such refs
// never exist on a remote, so fetching them makes no sense.
func IsRelativeRef(ref string) bool {
	if ref == "HEAD" {
		return true
	}
	if strings.ContainsAny(ref, "~^") {
		return true
	}
	if strings.Contains(ref, "@{") {
		return true
	}
	return IsLikelyCommitSHA(ref)
}

// RemoteRefResult describes the outcome of resolving a base ref against the
// origin remote.
type RemoteRefResult struct {
	ResolvedRef    string
	RefResolved    bool
	FetchAttempted bool
	FetchError     error
}

// FetchRemoteRef tries to fetch baseRef from origin so the diff base is up to
// date (important in CI where clones are shallow or stale). Refs that already
// name a remote branch, relative refs, and SHAs are passed through untouched.
// A failed fetch is not fatal: the local ref is used as a fallback.
func FetchRemoteRef(ctx context.Context, baseRef, workDir string) RemoteRefResult {
	if strings.HasPrefix(baseRef, "origin/") {
		return RemoteRefResult{ResolvedRef: baseRef, RefResolved: true}
	}
	if strings.HasPrefix(baseRef, "-") || IsRelativeRef(baseRef) {
		return RemoteRefResult{ResolvedRef: baseRef, RefResolved: true}
	}

	result := RemoteRefResult{FetchAttempted: true}

	fetchCmd := exec.CommandContext(ctx, "git", "fetch", "origin", baseRef)
	fetchCmd.Dir = workDir
	if err := fetchCmd.Run(); err != nil {
		result.FetchError = err
	}

	remoteRef := "origin/" + baseRef
	verifyCmd := exec.CommandContext(ctx, "git", "rev-parse", "--verify", "--quiet", remoteRef)
	verifyCmd.Dir = workDir
	if err := verifyCmd.Run(); err == nil {
		result.ResolvedRef = remoteRef
		result.RefResolved = true
		return result
	}

	result.ResolvedRef = baseRef
	result.RefResolved = false
	return result
}
