package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/mikestreety/ai-code-review/internal/domain"
	"github.com/mikestreety/ai-code-review/internal/git"
	"github.com/mikestreety/ai-code-review/internal/gitlab"
	"github.com/mikestreety/ai-code-review/internal/llm"
	"github.com/mikestreety/ai-code-review/internal/output"
	"github.com/mikestreety/ai-code-review/internal/reconcile"
	"github.com/mikestreety/ai-code-review/internal/terminal"
)

// reviewInputs bundles everything gathered before the LLM runs: the diff, the
// full contents of the changed files, and (in MR mode) the GitLab handles
// needed to post results.
type reviewInputs struct {
	diff   string
	files  *reconcile.FileSet
	client *gitlab.Client
	mr     *gitlab.MergeRequest
}

func executeReview(ctx context.Context, opts ReviewOpts, logger *terminal.Logger) domain.ExitCode {
	provider, err := llm.NewProvider(opts.Provider)
	if err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return domain.ExitError
	}
	if err := provider.IsAvailable(); err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return domain.ExitError
	}

	var inputs *reviewInputs
	if opts.MR > 0 {
		inputs, err = gatherMergeRequestInputs(ctx, opts, logger)
	} else {
		inputs, err = gatherLocalInputs(ctx, opts, logger)
	}
	if err != nil {
		if ctx.Err() != nil {
			return domain.ExitInterrupted
		}
		logger.Logf(terminal.StyleError, "%v", err)
		return domain.ExitError
	}

	// Short-circuit: no changes means nothing to review
	if inputs.diff == "" {
		logger.Log("No changes detected. Nothing to review.", terminal.StyleSuccess)
		return domain.ExitNoComments
	}

	logger.Debugf("Diff size: %d bytes, %d file(s) in context", len(inputs.diff), inputs.files.Len())

	raw, code := runProvider(ctx, provider, opts, inputs, logger)
	if code != domain.ExitNoComments {
		return code
	}

	reconciler := reconcile.NewReconciler(reconcile.DefaultMatcherConfig())
	review, diagnostics, err := reconciler.Reconcile(raw, provider.Name(), inputs.files)
	if err != nil {
		var malformed *reconcile.MalformedResponseError
		if errors.As(err, &malformed) {
			logger.Logf(terminal.StyleError, "Provider returned an unparseable response: %v", malformed)
		} else {
			logger.Logf(terminal.StyleError, "%v", err)
		}
		return domain.ExitError
	}

	for _, d := range diagnostics {
		logger.Debugf("Dropped comment: %s", d.String())
	}

	review, excluded, err := applyExcludePatterns(review, opts.ExcludePatterns)
	if err != nil {
		logger.Logf(terminal.StyleError, "Invalid exclude pattern: %v", err)
		return domain.ExitError
	}
	if excluded > 0 {
		logger.Debugf("Excluded %d comment(s) by pattern", excluded)
	}

	if err := renderReport(opts, review, inputs.files, logger); err != nil {
		logger.Logf(terminal.StyleError, "%v", err)
		return domain.ExitError
	}

	if opts.MR > 0 && !opts.DryRun {
		if code := publishReview(ctx, opts, inputs, review, logger); code != domain.ExitNoComments {
			return code
		}
	}

	if review.HasComments() {
		return domain.ExitComments
	}
	return domain.ExitNoComments
}

// gatherLocalInputs builds the diff and file context from the working tree.
func gatherLocalInputs(ctx context.Context, opts ReviewOpts, logger *terminal.Logger) (*reviewInputs, error) {
	// Resolve the base ref against origin so CI clones compare against a
	// fresh base rather than a stale local one.
	result := git.FetchRemoteRef(ctx, opts.Base, opts.WorkDir)
	if result.FetchAttempted && !result.RefResolved {
		logger.Logf(terminal.StyleWarning, "Failed to fetch %s from origin, comparing against local %s (may be stale)", opts.Base, result.ResolvedRef)
	}
	baseRef := result.ResolvedRef

	logger.Logf(terminal.StyleInfo, "Reviewing local changes %s(base=%s)%s",
		terminal.Color(terminal.Dim), baseRef, terminal.Color(terminal.Reset))

	diff, err := git.GetDiff(ctx, baseRef, opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get diff: %w", err)
	}

	paths, err := git.ChangedFiles(ctx, baseRef, opts.WorkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list changed files: %w", err)
	}

	files := reconcile.NewFileSet()
	for _, path := range paths {
		content, err := os.ReadFile(filepath.Join(workDirOrDot(opts.WorkDir), path))
		if err != nil {
			logger.Logf(terminal.StyleWarning, "Could not read %s, reviewing without its context: %v", path, err)
			continue
		}
		files.Add(path, string(content))
	}

	return &reviewInputs{diff: diff, files: files}, nil
}

// gatherMergeRequestInputs builds the diff and file context from the GitLab API.
func gatherMergeRequestInputs(ctx context.Context, opts ReviewOpts, logger *terminal.Logger) (*reviewInputs, error) {
	client, err := gitlab.NewClientFromEnv(opts.GitLabURL)
	if err != nil {
		return nil, err
	}

	mr, err := client.GetMergeRequest(ctx, opts.Project, opts.MR)
	if err != nil {
		return nil, err
	}

	logger.Logf(terminal.StyleInfo, "Reviewing %s!%d%s %s(%s → %s)%s",
		terminal.Color(terminal.Bold), mr.IID, terminal.Color(terminal.Reset),
		terminal.Color(terminal.Dim), mr.SourceBranch, mr.TargetBranch, terminal.Color(terminal.Reset))

	changes, err := client.GetMergeRequestChanges(ctx, opts.Project, opts.MR)
	if err != nil {
		return nil, err
	}

	files := reconcile.NewFileSet()
	for _, path := range gitlab.ChangedPaths(changes) {
		content, err := client.GetFileContent(ctx, opts.Project, path, mr.DiffRefs.HeadSHA)
		if err != nil {
			logger.Logf(terminal.StyleWarning, "Could not fetch %s, reviewing without its context: %v", path, err)
			continue
		}
		files.Add(path, content)
	}

	return &reviewInputs{
		diff:   gitlab.UnifiedDiff(changes),
		files:  files,
		client: client,
		mr:     mr,
	}, nil
}

// runProvider executes the LLM CLI and returns its raw output. The second
// return value is ExitNoComments on success and the failure code otherwise.
func runProvider(ctx context.Context, provider llm.Provider, opts ReviewOpts, inputs *reviewInputs, logger *terminal.Logger) (string, domain.ExitCode) {
	reviewCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	start := time.Now()
	result, err := provider.ExecuteReview(reviewCtx, &llm.ReviewRequest{
		Diff:       inputs.diff,
		Context:    reconcile.BuildContextBlob(inputs.files),
		WorkDir:    opts.WorkDir,
		Timeout:    opts.Timeout,
		UseRefFile: opts.UseRefFile,
	})
	if err != nil {
		logger.Logf(terminal.StyleError, "Failed to start %s: %v", provider.Name(), err)
		return "", domain.ExitError
	}

	spinner := terminal.NewSpinner(fmt.Sprintf("Waiting for %s", provider.Name()))
	spinnerCtx, spinnerCancel := context.WithCancel(context.Background())
	spinnerDone := make(chan struct{})
	go func() {
		spinner.Run(spinnerCtx)
		close(spinnerDone)
	}()

	rawBytes, readErr := io.ReadAll(result)
	closeErr := result.Close()
	spinnerCancel()
	<-spinnerDone

	if ctx.Err() != nil {
		return "", domain.ExitInterrupted
	}
	if reviewCtx.Err() == context.DeadlineExceeded {
		logger.Logf(terminal.StyleError, "%s timed out after %s", provider.Name(), opts.Timeout)
		return "", domain.ExitError
	}
	if readErr != nil {
		logger.Logf(terminal.StyleError, "Failed to read %s output: %v", provider.Name(), readErr)
		return "", domain.ExitError
	}
	if closeErr != nil {
		logger.Logf(terminal.StyleError, "Failed to close %s: %v", provider.Name(), closeErr)
		return "", domain.ExitError
	}
	if result.ExitCode() != 0 {
		logger.Logf(terminal.StyleError, "%s exited with code %d: %s", provider.Name(), result.ExitCode(), result.Stderr())
		return "", domain.ExitError
	}

	logger.Logf(terminal.StyleSuccess, "Review complete %s(%s)%s",
		terminal.Color(terminal.Dim), terminal.FormatDuration(time.Since(start)), terminal.Color(terminal.Reset))

	return string(rawBytes), domain.ExitNoComments
}

// applyExcludePatterns drops comments whose "file: body" text matches any
// pattern. Returns the filtered review and the number of dropped comments.
func applyExcludePatterns(review *domain.Review, patterns []string) (*domain.Review, int, error) {
	if len(patterns) == 0 {
		return review, 0, nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, 0, fmt.Errorf("%q: %w", p, err)
		}
		compiled = append(compiled, re)
	}

	var kept []domain.Comment
	for _, c := range review.Comments {
		target := c.File + ": " + c.Body
		matched := false
		for _, re := range compiled {
			if re.MatchString(target) {
				matched = true
				break
			}
		}
		if !matched {
			kept = append(kept, c)
		}
	}

	excluded := len(review.Comments) - len(kept)
	filtered := &domain.Review{Summary: review.Summary, Comments: kept}
	return filtered, excluded, nil
}

// renderReport writes the review in the selected format to stdout or --output.
func renderReport(opts ReviewOpts, review *domain.Review, files *reconcile.FileSet, logger *terminal.Logger) error {
	renderer, err := output.NewRenderer(opts.Format, files)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
		logger.Logf(terminal.StyleInfo, "Writing report to %s", opts.Output)
	}

	return renderer.Render(w, review)
}

// publishReview posts the summary as a note and each comment as a positioned
// discussion on the merge request.
func publishReview(ctx context.Context, opts ReviewOpts, inputs *reviewInputs, review *domain.Review, logger *terminal.Logger) domain.ExitCode {
	if review.Summary != "" {
		body := fmt.Sprintf("## AI Code Review\n\n%s", review.Summary)
		if err := inputs.client.PostNote(ctx, opts.Project, inputs.mr.IID, body); err != nil {
			logger.Logf(terminal.StyleError, "Failed to post summary: %v", err)
			return domain.ExitError
		}
	}

	posted := 0
	for _, c := range review.Comments {
		if ctx.Err() != nil {
			return domain.ExitInterrupted
		}
		if err := inputs.client.PostDiscussion(ctx, opts.Project, inputs.mr, c); err != nil {
			logger.Logf(terminal.StyleWarning, "Failed to post comment on %s:%d: %v", c.File, c.Line, err)
			continue
		}
		posted++
	}

	logger.Logf(terminal.StyleSuccess, "Posted %d comment(s) to %s", posted, inputs.mr.WebURL)
	return domain.ExitNoComments
}

func workDirOrDot(workDir string) string {
	if workDir == "" {
		return "."
	}
	return workDir
}
