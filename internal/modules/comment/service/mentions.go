package comment

import (
	"regexp"
	"strings"
)

var mentionPattern = regexp.MustCompile(`@([\w-]+)`)

// ExtractMentionTokens pulls the distinct @name tokens out of a comment
// body, lowercased, in order of first appearance. Tokens stop at the first
// character outside [A-Za-z0-9_-], so "@Alice!" yields "alice". Matching a
// token against a profile is the caller's job.
func ExtractMentionTokens(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]bool{}
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		token := strings.ToLower(m[1])
		if seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}
	return tokens
}
