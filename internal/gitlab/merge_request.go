package gitlab

import (
	"context"
	"fmt"
	"strings"
)

// DiffRefs identifies the three commits a merge request diff is anchored to.
// Positioned discussion posts require all three SHAs.
type DiffRefs struct {
	BaseSHA  string `json:"base_sha"`
	StartSHA string `json:"start_sha"`
	HeadSHA  string `json:"head_sha"`
}

// MergeRequest holds the subset of MR metadata the reviewer needs.
type MergeRequest struct {
	IID          int      `json:"iid"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	SourceBranch string   `json:"source_branch"`
	TargetBranch string   `json:"target_branch"`
	WebURL       string   `json:"web_url"`
	DiffRefs     DiffRefs `json:"diff_refs"`
}

// Change is one file entry from the MR changes endpoint.
type Change struct {
	OldPath     string `json:"old_path"`
	NewPath     string `json:"new_path"`
	NewFile     bool   `json:"new_file"`
	RenamedFile bool   `json:"renamed_file"`
	DeletedFile bool   `json:"deleted_file"`
	Diff        string `json:"diff"`
}

// GetMergeRequest fetches MR metadata including diff refs.
func (c *Client) GetMergeRequest(ctx context.Context, project string, iid int) (*MergeRequest, error) {
	var mr MergeRequest
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&mr).
		Get(fmt.Sprintf("/projects/%s/merge_requests/%d", projectID(project), iid))
	if err != nil {
		return nil, fmt.Errorf("gitlab get merge request failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("get merge request", resp)
	}
	return &mr, nil
}

// GetMergeRequestChanges fetches the per-file diffs of a merge request.
func (c *Client) GetMergeRequestChanges(ctx context.Context, project string, iid int) ([]Change, error) {
	var result struct {
		Changes []Change `json:"changes"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/projects/%s/merge_requests/%d/changes", projectID(project), iid))
	if err != nil {
		return nil, fmt.Errorf("gitlab get merge request changes failed: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("get merge request changes", resp)
	}
	return result.Changes, nil
}

// GetFileContent fetches the raw content of a file at the given ref.
func (c *Client) GetFileContent(ctx context.Context, project, path, ref string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("ref", ref).
		Get(fmt.Sprintf("/projects/%s/repository/files/%s/raw", projectID(project), projectID(path)))
	if err != nil {
		return "", fmt.Errorf("gitlab get file content failed: %w", err)
	}
	if resp.IsError() {
		return "", apiError("get file content", resp)
	}
	return string(resp.Body()), nil
}

// UnifiedDiff combines per-file change diffs into one unified diff blob,
// reconstructing the "--- a/… +++ b/…" headers the changes endpoint omits.
func UnifiedDiff(changes []Change) string {
	var b strings.Builder
	for _, ch := range changes {
		if ch.Diff == "" {
			continue
		}
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", ch.OldPath, ch.NewPath)
		if ch.NewFile {
			b.WriteString("--- /dev/null\n")
		} else {
			fmt.Fprintf(&b, "--- a/%s\n", ch.OldPath)
		}
		if ch.DeletedFile {
			b.WriteString("+++ /dev/null\n")
		} else {
			fmt.Fprintf(&b, "+++ b/%s\n", ch.NewPath)
		}
		b.WriteString(ch.Diff)
		if !strings.HasSuffix(ch.Diff, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ChangedPaths returns the reviewable file paths from a change set.
// Deleted files are excluded since there is nothing left to comment on.
func ChangedPaths(changes []Change) []string {
	var paths []string
	for _, ch := range changes {
		if ch.DeletedFile {
			continue
		}
		paths = append(paths, ch.NewPath)
	}
	return paths
}
