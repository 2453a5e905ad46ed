package gitlab

import (
	"context"
	"fmt"

	"github.com/mikestreety/ai-code-review/internal/domain"
)

// notePosition is the position payload for a positioned MR discussion.
type notePosition struct {
	BaseSHA      string `json:"base_sha"`
	StartSHA     string `json:"start_sha"`
	HeadSHA      string `json:"head_sha"`
	PositionType string `json:"position_type"`
	NewPath      string `json:"new_path"`
	NewLine      int    `json:"new_line"`
}

// PostDiscussion creates a discussion anchored to a file and line of the MR
// diff. When GitLab rejects the position (the line is not part of the diff,
// or the SHAs have moved on), it falls back to a plain note that quotes the
// location, so the comment is never lost.
func (c *Client) PostDiscussion(ctx context.Context, project string, mr *MergeRequest, comment domain.Comment) error {
	body := map[string]interface{}{
		"body": comment.Body,
		"position": notePosition{
			BaseSHA:      mr.DiffRefs.BaseSHA,
			StartSHA:     mr.DiffRefs.StartSHA,
			HeadSHA:      mr.DiffRefs.HeadSHA,
			PositionType: "text",
			NewPath:      comment.File,
			NewLine:      comment.Line,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(fmt.Sprintf("/projects/%s/merge_requests/%d/discussions", projectID(project), mr.IID))
	if err != nil {
		return fmt.Errorf("gitlab post discussion failed: %w", err)
	}
	if resp.IsError() {
		fallback := fmt.Sprintf("**%s:%d**\n\n%s", comment.File, comment.Line, comment.Body)
		return c.PostNote(ctx, project, mr.IID, fallback)
	}
	return nil
}

// PostNote creates a plain (unpositioned) note on the merge request.
func (c *Client) PostNote(ctx context.Context, project string, iid int, body string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"body": body}).
		Post(fmt.Sprintf("/projects/%s/merge_requests/%d/notes", projectID(project), iid))
	if err != nil {
		return fmt.Errorf("gitlab post note failed: %w", err)
	}
	if resp.IsError() {
		return apiError("post note", resp)
	}
	return nil
}
