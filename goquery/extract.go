package goquery

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/litcrawl"
)

// linkSelector matches every element that carries an outbound link.
const linkSelector = "a[href], area[href]"

// ignoredExtensions are link targets that are never HTML documents.
var ignoredExtensions = map[string]bool{
	// archives
	"7z": true, "7zip": true, "bz2": true, "rar": true, "tar": true, "tgz": true, "xz": true, "zip": true, "gz": true,
	// images
	"mng": true, "pct": true, "bmp": true, "gif": true, "jpg": true, "jpeg": true, "png": true, "pst": true,
	"psp": true, "tif": true, "tiff": true, "ai": true, "drw": true, "dxf": true, "eps": true, "ps": true,
	"svg": true, "cdr": true, "ico": true, "webp": true,
	// audio
	"mp3": true, "wma": true, "ogg": true, "wav": true, "ra": true, "aac": true, "mid": true, "au": true, "aiff": true,
	// video
	"3gp": true, "asf": true, "asx": true, "avi": true, "mov": true, "mp4": true, "mpg": true, "qt": true,
	"rm": true, "swf": true, "wmv": true, "m4a": true, "m4v": true, "flv": true, "webm": true,
	// documents
	"xls": true, "xlsx": true, "ppt": true, "pptx": true, "pps": true, "doc": true, "docx": true,
	"odt": true, "ods": true, "odg": true, "odp": true, "pdf": true,
	// other
	"css": true, "exe": true, "bin": true, "rss": true, "dmg": true, "iso": true, "apk": true, "jar": true, "js": true,
}

// ParseDocument parses an HTML page body.
// Returns EEXTRACT if the body cannot be parsed.
func ParseDocument(body string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, litcrawl.Errorf(litcrawl.EEXTRACT, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// ResolveLinks returns the absolute http(s) targets of every a[href] and
// area[href] in doc, resolved against base with fragments removed.
// Targets are unique and in document order. Links to binary files are
// skipped.
func ResolveLinks(doc *goquery.Document, base *url.URL) []*url.URL {
	seen := make(map[string]bool)
	var links []*url.URL

	doc.Find(linkSelector).Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			return
		}

		// Skip non-HTTP links (javascript:, mailto:, etc.)
		if isNonHTTPLink(href) {
			return
		}

		u := resolveURL(base, href)
		if u == nil || hasIgnoredExtension(u) {
			return
		}

		key := u.String()
		if seen[key] {
			return
		}
		seen[key] = true
		links = append(links, u)
	})

	return links
}

// resolveURL resolves href against base and strips the fragment.
// Returns nil if href cannot be parsed or does not resolve to http(s).
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}
	if resolved.Host == "" {
		return nil
	}
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}

func hasIgnoredExtension(u *url.URL) bool {
	ext := strings.TrimPrefix(path.Ext(u.Path), ".")
	if ext == "" {
		return false
	}
	return ignoredExtensions[strings.ToLower(ext)]
}
