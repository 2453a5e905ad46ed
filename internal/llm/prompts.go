package llm

import "fmt"

// DefaultReviewPrompt is the review prompt shared by all providers. It pins
// the output to the JSON shape the reconciler parses: a summary plus a list
// of file/line/comment entries.
const DefaultReviewPrompt = `You are an experienced code reviewer. Review the merge request changes below.

You are given two sections:
- CHANGED FILES: the full current content of each changed file, delimited by
  "--- path ---" headers. Line numbers in your comments MUST refer to these
  full files, not to the diff.
- DIFF: the unified diff of the changes. Use it to understand what changed,
  but anchor every comment in the full file content.

## What to look for:
- Logic errors, wrong behavior, crashes
- Security issues (injection, auth bypass, exposure)
- Silent failures, swallowed errors
- Missing edge case handling
- Maintainability problems in the changed code

## What to skip:
- Style/formatting
- Performance unless severe
- Code outside the changed files

## Output format:

Return ONLY valid JSON in this exact shape, with no surrounding text:

{
  "summary": "One-paragraph overview of the changes and their quality.",
  "comments": [
    {"file": "path/to/file.js", "line": 42, "comment": "Description of the issue."}
  ]
}

Quote the exact code you are commenting on inside backticks in the comment
text. If there are no issues, return an empty comments array.`

// refFileInstruction is appended to the prompt in ref-file mode.
const refFileInstruction = `

The CHANGED FILES and DIFF sections are in file: %s
Read that file to examine the changes.`

// BuildReviewInput assembles the payload handed to the provider: the
// full-file context blob followed by the diff.
func BuildReviewInput(contextBlob, diff string) string {
	input := "## CHANGED FILES\n\n" + contextBlob
	if diff == "" {
		return input + "\n\n## DIFF\n\n(No changes detected)"
	}
	return input + "\n\n## DIFF\n\n```diff\n" + diff + "\n```"
}

// buildRefFilePrompt returns the review prompt for ref-file mode.
func buildRefFilePrompt(inputPath string) string {
	return DefaultReviewPrompt + fmt.Sprintf(refFileInstruction, inputPath)
}
