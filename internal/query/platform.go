package query

import (
	"strings"
)

const (
	PlatformInstagram = "instagram.com"
	PlatformTikTok    = "tiktok.com"
)

// NormalizePlatform turns user input ("Instagram", "https://www.tiktok.com/",
// "ig") into the host suffix used for site scoping.
func NormalizePlatform(raw string) string {
	platform := strings.ToLower(strings.TrimSpace(raw))
	platform = strings.TrimPrefix(platform, "https://")
	platform = strings.TrimPrefix(platform, "http://")
	platform = strings.TrimPrefix(platform, "www.")
	platform = strings.TrimRight(platform, "/")

	switch platform {
	case "instagram", "ig", "insta":
		return PlatformInstagram
	case "tiktok", "tt", "tik-tok":
		return PlatformTikTok
	default:
		return platform
	}
}

// KnownPlatforms lists the platforms the form offers.
func KnownPlatforms() []string {
	return []string{PlatformInstagram, PlatformTikTok}
}
