package entities

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// ChecksName is the check run name; it is also used to find a previous run.
	ChecksName = "Report of gradle-dependency-diff-action"
	// ReportTag marks comments and PR body blocks owned by this tool.
	ReportTag = "<!-- gradle-dependency-diff-action -->"

	ConclusionSuccess = "success"
	ConclusionNeutral = "neutral"

	noDifferencesSummary = "🆗 There are no differences in the Gradle dependencies.\n"
	differencesSummary   = "⚠️ Detected that there are differences in the Gradle dependencies.\n"
	reportNoteFormat     = "> [!Note]\n> Detected that there are [differences](%s) in the Gradle dependencies.\n"
)

var reportBlockPattern = regexp.MustCompile(regexp.QuoteMeta(ReportTag) + `[\s\S]*` + regexp.QuoteMeta(ReportTag))

// ChecksOutput is the output payload of the check run. Text is nil when
// there is nothing to detail.
type ChecksOutput struct {
	Title   string
	Summary string
	Text    *string
}

// NewChecksOutput renders the check run output for results.
func NewChecksOutput(results []DiffResult) ChecksOutput {
	groups := GroupByProject(results)
	output := ChecksOutput{
		Title:   ChecksName,
		Summary: checksSummary(groups),
	}
	if len(groups) > 0 {
		text := checksText(groups)
		output.Text = &text
	}
	return output
}

func checksSummary(groups []ProjectDiff) string {
	if len(groups) == 0 {
		return noDifferencesSummary
	}

	var sb strings.Builder
	sb.WriteString(differencesSummary)
	for _, group := range groups {
		sb.WriteString("- " + group.Project + "\n")
	}
	return sb.String()
}

func checksText(groups []ProjectDiff) string {
	var sb strings.Builder
	for _, group := range groups {
		sb.WriteString("### " + group.Project + "\n")
		for _, result := range group.Results {
			sb.WriteString("#### " + result.Configuration + "\n")
			sb.WriteString("```diff\n")
			sb.WriteString(result.Result + "\n")
			sb.WriteString("```\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Conclusion returns the check run conclusion for results.
func Conclusion(results []DiffResult) string {
	if len(results) == 0 {
		return ConclusionSuccess
	}
	return ConclusionNeutral
}

// CommentBody is the body of the tagged pull request comment.
func CommentBody(checksURL string) string {
	return fmt.Sprintf(reportNoteFormat, checksURL) + ReportTag
}

// ApplyPullRequestBody returns body with the tagged report block replaced,
// appended or removed. The span from the first to the last tag is the block.
func ApplyPullRequestBody(body string, hasDiff bool, checksURL string) string {
	loc := reportBlockPattern.FindStringIndex(body)

	if !hasDiff {
		if loc == nil {
			return body
		}
		return body[:loc[0]] + body[loc[1]:]
	}

	block := ReportTag + "\n" + fmt.Sprintf(reportNoteFormat, checksURL) + ReportTag
	if loc == nil {
		return body + "\n" + block + "\n"
	}
	return body[:loc[0]] + block + body[loc[1]:]
}
