package url

import "net/url"

var Parse = url.Parse

// IsAbsolute reports whether s has an absolute-URL shape: a scheme, the
// "://" separator and a non-empty host.
//
// Compact IRIs like "scm:name" parse with a scheme but no host, so they are
// not considered absolute here.
func IsAbsolute(s string) bool {
	u, err := Parse(s)
	if err != nil {
		return false
	}

	return u.IsAbs() && u.Host != ""
}
