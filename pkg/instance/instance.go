package instance

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

var (
	protocolRe    = regexp.MustCompile(`https?://`)
	nameCharsRe   = regexp.MustCompile(`[:./]`)
	nonAlphaNumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// Name turns a base URL into a filesystem safe instance name used to prefix
// screenshots: the first protocol prefix is dropped and ':', '.' and '/' become '-'.
//
//	Name("https://scale-computing.example.com:8080") == "scale-computing-example-com-8080"
func Name(baseURL string) string {
	s := baseURL
	if loc := protocolRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]] + s[loc[1]:]
	}
	s = strings.TrimRight(s, "/")
	return nameCharsRe.ReplaceAllString(s, "-")
}

// FileName turns a base URL into the metrics artifact file stem: every
// character outside [a-zA-Z0-9] becomes '_'.
func FileName(baseURL string) string {
	return nonAlphaNumRe.ReplaceAllString(baseURL, "_")
}

// JoinURL appends path to baseURL. Absolute URLs are returned unchanged.
func JoinURL(baseURL, path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if path == "" {
		path = "/"
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// CommandTimeout returns the command timeout profile for the instance.
// Production instances get 15s and staging 12s; everything else keeps def.
func CommandTimeout(baseURL string, def time.Duration) time.Duration {
	switch {
	case strings.Contains(baseURL, "production") || strings.Contains(baseURL, "prod"):
		return 15 * time.Second
	case strings.Contains(baseURL, "staging"):
		return 12 * time.Second
	default:
		return def
	}
}

const (
	KindProduction     = "production"
	KindStaging        = "staging"
	KindScaleComputing = "scale-computing"
)

// Kind classifies the instance from its base URL, checking production
// first. It returns "" for unrecognised instances.
func Kind(baseURL string) string {
	switch {
	case IsProduction(baseURL):
		return KindProduction
	case strings.Contains(baseURL, "staging"):
		return KindStaging
	case strings.Contains(baseURL, "scale-computing"):
		return KindScaleComputing
	default:
		return ""
	}
}

// IsProduction reports whether the base URL targets a production instance.
func IsProduction(baseURL string) bool {
	return strings.Contains(baseURL, "production") || strings.Contains(baseURL, "prod")
}
