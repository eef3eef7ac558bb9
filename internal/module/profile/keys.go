package profile

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"
)

// AllowedExtensions lists the document formats accepted for profile uploads.
var AllowedExtensions = []string{".pdf", ".pptx", ".ppt"}

// MaxFilesPerRequest bounds a single token or upload batch.
const MaxFilesPerRequest = 10

// BuildObjectKey constructs the deterministic destination key for a profile
// upload: <tenantId>/<openingId>/<unixMillis>_<filename>. The millisecond
// timestamp namespaces concurrent uploads of same-named files. It is pure
// digits, so the first underscore in the last segment always terminates the
// prefix and original filenames containing underscores round-trip intact.
func BuildObjectKey(tenantID, openingID, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%d_%s", tenantID, openingID, now.UnixMilli(), filename)
}

// OriginalFilename recovers the display filename from an object key by
// stripping the timestamp prefix off the last path segment.
func OriginalFilename(key string) string {
	base := path.Base(key)
	if i := strings.Index(base, "_"); i >= 0 {
		return base[i+1:]
	}
	return base
}

// KeyScope is the tenant/opening prefix a key must live under.
type KeyScope struct {
	TenantID  string
	OpeningID string
}

// Contains reports whether the key sits under this tenant/opening prefix.
// A well-formed key has exactly three segments and a numeric timestamp.
func (s KeyScope) Contains(key string) bool {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] != s.TenantID || parts[1] != s.OpeningID {
		return false
	}
	ts, _, found := strings.Cut(parts[2], "_")
	if !found {
		return false
	}
	_, err := strconv.ParseInt(ts, 10, 64)
	return err == nil
}

// hasAllowedExtension checks the filename extension against the allow-list.
func hasAllowedExtension(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// invalidFilenames returns every filename whose extension is not allowed,
// so validation errors can name all offenders rather than the first.
func invalidFilenames(filenames []string) []string {
	var invalid []string
	for _, f := range filenames {
		if !hasAllowedExtension(f) {
			invalid = append(invalid, f)
		}
	}
	return invalid
}
