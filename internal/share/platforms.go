package share

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Platform identifies a share target. The set is closed: adding one means
// adding a row to the platform table, not new branching logic.
type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	WhatsApp  Platform = "whatsapp"
	Twitter   Platform = "twitter"
	LinkedIn  Platform = "linkedin"
)

// Platforms lists every supported target in display order.
var Platforms = []Platform{Facebook, Instagram, WhatsApp, Twitter, LinkedIn}

// ErrUnknownPlatform is returned for a target outside the closed set.
var ErrUnknownPlatform = errors.New("unknown share platform")

// ParsePlatform maps user input onto the closed platform set.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := platforms[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
	}
	return p, nil
}

const (
	instagramHomeURL = "https://www.instagram.com/"

	// X/Twitter post budget, with headroom reserved for separators.
	tweetBudget          = 280
	tweetSeparatorBuffer = 10
	tweetMaxHashtags     = 3
)

// platformSpec is one row of the platform table: how to render the text and
// how to build the outbound URL from it.
type platformSpec struct {
	render   func(c Content) string
	shareURL func(c Content, text string) string
}

var platforms = map[Platform]platformSpec{
	Facebook: {
		render: func(c Content) string {
			return fmt.Sprintf("%s\n\n%s\n\n🔗 %s", c.Title, c.Description, c.URL)
		},
		shareURL: func(c Content, text string) string {
			return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(c.URL) +
				"&quote=" + url.QueryEscape(text)
		},
	},
	Instagram: {
		render: func(c Content) string {
			return fmt.Sprintf("%s ✨\n\n%s\n\n%s\n\nLink in bio! 👆", c.Title, c.Description, hashtagLine(c.Hashtags, 0))
		},
		// Instagram has no URL-based share: the caller copies the rendered
		// text to the clipboard and opens the app.
		shareURL: func(c Content, text string) string {
			return instagramHomeURL
		},
	},
	WhatsApp: {
		render: func(c Content) string {
			return fmt.Sprintf("%s\n\n%s\n\n🎟️ Get your tickets: %s", c.Title, c.Description, c.URL)
		},
		shareURL: func(c Content, text string) string {
			return "https://wa.me/?text=" + url.QueryEscape(text)
		},
	},
	Twitter: {
		render:   renderTweet,
		shareURL: func(c Content, text string) string {
			return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(text)
		},
	},
	LinkedIn: {
		render: func(c Content) string {
			return fmt.Sprintf("%s\n\n%s\n\nEvent Details: %s", c.Title, c.Description, c.URL)
		},
		shareURL: func(c Content, text string) string {
			return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(c.URL) +
				"&title=" + url.QueryEscape(c.Title) +
				"&summary=" + url.QueryEscape(c.Description)
		},
	},
}

// RenderText renders the platform-specific share text. Pure, no I/O.
func RenderText(c Content, p Platform) (string, error) {
	spec, ok := platforms[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	return spec.render(c), nil
}

// ShareURL builds the outbound URL for the platform. For Instagram this is
// only the app home URL; delivery happens through the clipboard.
func ShareURL(c Content, p Platform) (string, error) {
	spec, ok := platforms[p]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, p)
	}
	return spec.shareURL(c, spec.render(c)), nil
}

// TwitterIntentURL is the alternate tweet builder: the link travels in the
// intent's url parameter instead of inside the text.
func TwitterIntentURL(c Content) string {
	stripped := c
	stripped.URL = ""
	return "https://twitter.com/intent/tweet?text=" + url.QueryEscape(renderTweet(stripped)) +
		"&url=" + url.QueryEscape(c.URL)
}

// renderTweet fits title, description, up to three hashtags and the link
// into the post budget. The description gives way first and ends with an
// ellipsis marker when cut.
func renderTweet(c Content) string {
	tags := hashtagLine(c.Hashtags, tweetMaxHashtags)

	fixed := utf8.RuneCountInString(c.Title) +
		utf8.RuneCountInString(tags) +
		utf8.RuneCountInString(c.URL) +
		tweetSeparatorBuffer

	description := truncateRunes(c.Description, tweetBudget-fixed)

	parts := make([]string, 0, 4)
	for _, part := range []string{c.Title, description, tags, c.URL} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}

// truncateRunes caps s at limit runes, marking the cut with an ellipsis.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return ""
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:limit-3]), " ") + "..."
}

// hashtagLine renders ordered tags as "#A #B ...", keeping at most max
// when max is positive.
func hashtagLine(tags []string, max int) string {
	if max > 0 && len(tags) > max {
		tags = tags[:max]
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}
