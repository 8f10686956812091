package chat

import (
	"errors"
	"regexp"

	"github.com/charmbracelet/x/ansi"
)

var errNoAsker = errors.New("chat: no answer service configured")

// Links are the profile destinations answers may mention.
type Links struct {
	GitHub   string
	LinkedIn string
	Email    string
}

type linkRule struct {
	pattern *regexp.Regexp
	url     func(Links) string
}

var linkRules = []linkRule{
	{regexp.MustCompile(`(?i)github`), func(l Links) string { return l.GitHub }},
	{regexp.MustCompile(`(?i)linkedin`), func(l Links) string { return l.LinkedIn }},
	{regexp.MustCompile(`(?i)contact me`), func(l Links) string {
		if l.Email == "" {
			return ""
		}
		return "mailto:" + l.Email
	}},
}

// Format turns mentions of GitHub, LinkedIn and "contact me" in an answer
// into terminal hyperlinks (OSC 8). Keywords without a configured link are
// left as plain text.
func Format(text string, links Links) string {
	for _, rule := range linkRules {
		url := rule.url(links)
		if url == "" {
			continue
		}
		text = rule.pattern.ReplaceAllStringFunc(text, func(m string) string {
			return ansi.SetHyperlink(url) + m + ansi.ResetHyperlink()
		})
	}
	return text
}
