// Package output renders analysis reports, account info, and status lines
// for the terminal.
package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aidooit/qualidoo/qualidoo"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)

	scoreGoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	scoreWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	scoreBadStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Italic(true)
	agentNameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	userPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 2)
)

var gradeStyles = map[string]lipgloss.Style{
	"A+": lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
	"A":  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	"B":  lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	"C":  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	"D":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	"F":  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

type severityStyle struct {
	style lipgloss.Style
	icon  string
}

var severityStyles = map[string]severityStyle{
	qualidoo.SeverityCritical: {lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), "!!"},
	qualidoo.SeverityMajor:    {lipgloss.NewStyle().Foreground(lipgloss.Color("196")), "!"},
	qualidoo.SeverityMinor:    {lipgloss.NewStyle().Foreground(lipgloss.Color("226")), "-"},
	qualidoo.SeverityInfo:     {dimStyle, "i"},
}

// Agents in display order, most impactful first. Agents the service adds
// later simply don't show in the table until listed here.
var agentOrder = []string{
	"python_quality",
	"security",
	"orm_patterns",
	"performance",
	"structure",
	"documentation",
	"test_coverage",
	"manifest",
	"views_frontend",
}

const maxTopIssues = 10
const maxRecommendationsPerAgent = 3

// Grade converts a 0-100 score to a letter grade.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

// GradeLabel describes a 0-100 score in words.
func GradeLabel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Very Good"
	case score >= 70:
		return "Good"
	case score >= 60:
		return "Needs Work"
	default:
		return "Poor"
	}
}

// ErrorLine formats an error message for stderr.
func ErrorLine(message string) string {
	return fmt.Sprintf("%s %s", errorStyle.Render("Error:"), message)
}

// SuccessLine formats a success message.
func SuccessLine(message string) string {
	return successStyle.Render(message)
}

// FailureLine formats a short failure marker like "Failed".
func FailureLine(message string) string {
	return errorStyle.Render(message)
}

// RenderReport formats the analysis result for the terminal: score panel,
// per-agent table, top issues, and (verbose) locations, suggestions, and
// per-agent recommendations.
func RenderReport(result *qualidoo.AnalysisResult, addonName string, verbose bool) string {
	var b strings.Builder

	grade := Grade(result.OverallScore)
	gradeStyle, ok := gradeStyles[grade]
	if !ok {
		gradeStyle = lipgloss.NewStyle()
	}

	summary := fmt.Sprintf("%s\n%s %s %s",
		boldStyle.Render(addonName),
		boldStyle.Render("Score:"),
		gradeStyle.Render(fmt.Sprintf("%.1f/100", result.OverallScore)),
		dimStyle.Render(fmt.Sprintf("(%s)", GradeLabel(result.OverallScore))),
	)
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(gradeStyle.GetForeground()).
		Padding(0, 2)
	b.WriteString(panel.Render(summary))
	b.WriteString("\n\n")

	if table := renderAgentTable(result.AgentResults); table != "" {
		b.WriteString(table)
		b.WriteString("\n")
	}

	if len(result.TopIssues) > 0 {
		b.WriteString(boldStyle.Render("Top Issues:"))
		b.WriteString("\n")
		issues := result.TopIssues
		if len(issues) > maxTopIssues {
			issues = issues[:maxTopIssues]
		}
		for _, issue := range issues {
			b.WriteString(renderIssue(issue, verbose))
		}
		b.WriteString("\n")
	}

	if verbose {
		b.WriteString(renderRecommendations(result.AgentResults))
	}

	b.WriteString(dimStyle.Render("View the full report on your dashboard:"))
	b.WriteString(" https://qualidoo.aidooit.com\n")
	return b.String()
}

func renderAgentTable(agents []qualidoo.AgentResult) string {
	if len(agents) == 0 {
		return ""
	}
	byName := make(map[string]qualidoo.AgentResult, len(agents))
	for _, agent := range agents {
		byName[agent.AgentName] = agent
	}

	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("%-18s %6s %7s", "Agent", "Score", "Issues")))
	b.WriteString("\n")

	for _, name := range agentOrder {
		agent, ok := byName[name]
		if !ok {
			continue
		}
		display := agent.DisplayName
		if display == "" {
			display = displayName(name)
		}

		style := scoreBadStyle
		switch {
		case agent.Score >= 80:
			style = scoreGoodStyle
		case agent.Score >= 60:
			style = scoreWarnStyle
		}

		issues := "-"
		if len(agent.Findings) > 0 {
			issues = fmt.Sprintf("%d", len(agent.Findings))
		}

		b.WriteString(fmt.Sprintf("%s %s %7s\n",
			agentNameStyle.Render(fmt.Sprintf("%-18s", display)),
			style.Render(fmt.Sprintf("%6d", int(agent.Score))),
			issues,
		))
	}
	return b.String()
}

func renderIssue(issue qualidoo.Finding, verbose bool) string {
	severity := strings.ToUpper(issue.Severity)
	sev, ok := severityStyles[severity]
	if !ok {
		sev = severityStyle{dimStyle, "-"}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s %s\n",
		sev.style.Render(sev.icon),
		sev.style.Render(severity+":"),
		issue.Message,
	))

	if verbose {
		if issue.FilePath != "" {
			location := issue.FilePath
			if issue.LineNumber > 0 {
				location = fmt.Sprintf("%s:%d", issue.FilePath, issue.LineNumber)
			}
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %s", location)))
			b.WriteString("\n")
		}
		if issue.Suggestion != "" {
			b.WriteString(fmt.Sprintf("    %s %s\n", suggestionStyle.Render("Suggestion:"), issue.Suggestion))
		}
	}
	return b.String()
}

func renderRecommendations(agents []qualidoo.AgentResult) string {
	var b strings.Builder
	for _, agent := range agents {
		if len(agent.Recommendations) == 0 {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(boldStyle.Render("Recommendations by Agent:"))
			b.WriteString("\n")
		}
		display := agent.DisplayName
		if display == "" {
			display = displayName(agent.AgentName)
		}
		b.WriteString(fmt.Sprintf("  %s\n", agentNameStyle.Render(display+":")))
		recs := agent.Recommendations
		if len(recs) > maxRecommendationsPerAgent {
			recs = recs[:maxRecommendationsPerAgent]
		}
		for _, rec := range recs {
			b.WriteString(fmt.Sprintf("    %s %s\n", dimStyle.Render("-"), rec))
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// displayName turns an agent_name like "python_quality" into "Python Quality".
func displayName(agentName string) string {
	words := strings.Split(agentName, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// RenderUserInfo formats the authenticated account details in a panel.
func RenderUserInfo(user *qualidoo.UserInfo) string {
	tierStyle := dimStyle
	switch strings.ToLower(user.Tier) {
	case "beta":
		tierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))
	case "pro":
		tierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	case "team":
		tierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	}

	content := fmt.Sprintf("%s %s\n%s %s\n%s %d / %s\n%s %d / %s",
		boldStyle.Render("Email:"), user.Email,
		boldStyle.Render("Tier:"), tierStyle.Render(strings.ToUpper(user.Tier)),
		boldStyle.Render("Analyses this month:"), user.AnalysesThisMonth, limitString(user.AnalysesLimit),
		boldStyle.Render("API calls today:"), user.APIRequestsToday, limitString(user.APILimit),
	)
	return userPanelStyle.Render(content)
}

func limitString(limit *int) string {
	if limit == nil {
		return "unlimited"
	}
	return fmt.Sprintf("%d", *limit)
}

// RenderConfigInfo shows where the config lives and a masked view of the
// stored key.
func RenderConfigInfo(path, storedKey string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", boldStyle.Render("Config file:"), path))
	if storedKey == "" {
		b.WriteString(fmt.Sprintf("%s %s\n", boldStyle.Render("API key:"), dimStyle.Render("Not configured")))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", boldStyle.Render("API key:"), MaskKey(storedKey)))
	}
	return b.String()
}

// MaskKey hides the middle of an API key, keeping just enough to identify it.
func MaskKey(key string) string {
	if len(key) > 12 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	return "***"
}
