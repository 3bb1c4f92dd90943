package commands

import (
	"net/url"
	"strings"
)

// PostingPlatform is the social network a posting link points at.
type PostingPlatform string

const (
	PlatformTikTok    PostingPlatform = "tiktok"
	PlatformInstagram PostingPlatform = "instagram"
	PlatformYouTube   PostingPlatform = "youtube"
	PlatformX         PostingPlatform = "x"
	PlatformOther     PostingPlatform = "other"
)

// PostReference identifies the post behind a posting link when the platform
// is recognised.
type PostReference struct {
	Platform PostingPlatform
	PostID   string
	Handle   string
}

// detectPostReference never fails: links on unknown hosts, or with paths the
// parsers do not understand, are still valid posting links.
func detectPostReference(rawURL string) PostReference {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return PostReference{Platform: PlatformOther}
	}
	host := strings.ToLower(strings.TrimSpace(parsed.Hostname()))
	segments := splitPathSegments(parsed.Path)

	switch {
	case strings.Contains(host, "tiktok.com"):
		return parseTikTok(host, segments)
	case strings.Contains(host, "instagram.com"):
		return parseInstagram(segments)
	case strings.Contains(host, "youtube.com"), strings.Contains(host, "youtu.be"):
		return parseYouTube(host, parsed.Query().Get("v"), segments)
	case host == "x.com", strings.HasSuffix(host, ".x.com"), strings.Contains(host, "twitter.com"):
		return parseX(segments)
	default:
		return PostReference{Platform: PlatformOther}
	}
}

func parseTikTok(host string, segments []string) PostReference {
	ref := PostReference{Platform: PlatformTikTok}
	if len(segments) >= 3 && strings.HasPrefix(segments[0], "@") && segments[1] == "video" {
		ref.PostID, ref.Handle = segments[2], segments[0]
	} else if len(segments) >= 1 && strings.HasPrefix(host, "vm.") {
		ref.PostID = segments[0]
	}
	return ref
}

func parseInstagram(segments []string) PostReference {
	ref := PostReference{Platform: PlatformInstagram}
	if len(segments) >= 2 && (segments[0] == "p" || segments[0] == "reel") {
		ref.PostID = segments[1]
	}
	return ref
}

func parseYouTube(host string, queryVideoID string, segments []string) PostReference {
	ref := PostReference{Platform: PlatformYouTube}
	switch {
	case strings.Contains(host, "youtu.be") && len(segments) >= 1:
		ref.PostID = segments[0]
	case strings.TrimSpace(queryVideoID) != "":
		ref.PostID = strings.TrimSpace(queryVideoID)
	case len(segments) >= 2 && segments[0] == "shorts":
		ref.PostID = segments[1]
	}
	return ref
}

func parseX(segments []string) PostReference {
	ref := PostReference{Platform: PlatformX}
	if len(segments) >= 3 && segments[1] == "status" {
		ref.PostID, ref.Handle = segments[2], segments[0]
	}
	return ref
}

func splitPathSegments(rawPath string) []string {
	parts := strings.Split(strings.Trim(strings.TrimSpace(rawPath), "/"), "/")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
