// Generic data manipulation utilities.

package main

import (
	"encoding/json"
	"path/filepath"
	"strconv"
	"strings"
)

// Convert a version string like "1.2" or "1.2.3" into a numeric value.
// The major and minor each take a byte, the patch level is ignored.
func parseVersion(vers string) int {
	var major, minor int
	var err error

	dot := strings.Index(vers, ".")
	if dot >= 0 {
		major, err = strconv.Atoi(vers[:dot])
	} else {
		major, err = strconv.Atoi(vers)
	}
	if err != nil {
		return 0
	}

	dot2 := strings.IndexFunc(vers[dot+1:], func(r rune) bool {
		return !('0' <= r && r <= '9')
	})
	if dot2 > 0 {
		minor, err = strconv.Atoi(vers[dot+1 : dot+1+dot2])
	} else {
		minor, err = strconv.Atoi(vers[dot+1:])
	}
	if err != nil {
		return 0
	}

	if major < 0 || minor < 0 || minor >= 0xff || major >= 0xff {
		return 0
	}

	return (major << 8) | minor
}

// base10Version converts a bit-packed version into a human-readable decimal,
// e.g. 0x0102 -> 102.
func base10Version(hex int) int64 {
	major := hex >> 8 & 0xff
	minor := hex & 0xff
	return int64(major*100 + minor)
}

// Convert relative filepath to absolute.
func toAbsolutePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(filepath.Join(base, path))
}

// normalizeContent round-trips document content through JSON so values read
// back from a database driver compare deep-equal to values decoded from the
// wire (e.g. ints become float64, driver map types become map[string]any).
func normalizeContent(content map[string]any) map[string]any {
	raw, err := json.Marshal(content)
	if err != nil {
		return content
	}
	var out map[string]any
	if err = json.Unmarshal(raw, &out); err != nil {
		return content
	}
	return out
}
