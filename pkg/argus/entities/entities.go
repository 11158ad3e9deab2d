// Package entities pulls structured tokens out of free post text:
// hashtags, @-mentions, and URLs. Extraction is pure and never fails;
// results preserve order of first appearance in the text.
package entities

import "regexp"

var (
	tagPattern     = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	linkPattern    = regexp.MustCompile(`https?://\S+`)
)

// Entities holds the extracted token lists for one post.
type Entities struct {
	Tags     []string
	Mentions []string
	Links    []string
}

// Extract scans text for hashtags, mentions, and links.
// Empty input yields empty (non-nil) slices.
func Extract(text string) Entities {
	return Entities{
		Tags:     captures(tagPattern, text),
		Mentions: captures(mentionPattern, text),
		Links:    matches(linkPattern, text),
	}
}

// captures returns the first capture group of every match.
func captures(re *regexp.Regexp, text string) []string {
	found := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(found))
	for _, m := range found {
		out = append(out, m[1])
	}
	return out
}

func matches(re *regexp.Regexp, text string) []string {
	found := re.FindAllString(text, -1)
	if found == nil {
		return []string{}
	}
	return found
}
