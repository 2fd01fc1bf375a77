// Package semver implements semantic version fingerprints of chat binaries.
package semver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type (
	// V is structured semantic version representation
	V struct {
		Major, Minor, Patch uint
		PreRelease          string
		BuildMetadata       []string
	}
)

// ErrSyntax - returned by Parse for malformed version.
var ErrSyntax = errors.New("semver: invalid version")

func (v V) String() string {
	buf := strings.Builder{}
	buf.WriteString(strconv.FormatUint(uint64(v.Major), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Minor), 10))
	buf.WriteByte('.')
	buf.WriteString(strconv.FormatUint(uint64(v.Patch), 10))
	if v.PreRelease != "" {
		buf.WriteByte('-')
		buf.WriteString(v.PreRelease)
	}
	if len(v.BuildMetadata) > 0 {
		buf.WriteByte('+')
		buf.WriteString(strings.Join(v.BuildMetadata, "."))
	}

	return buf.String()
}

// Parse - parses "MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD.META]", optional leading "v" is allowed.
func Parse(s string) (V, error) {
	v := V{}
	rest := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		meta := rest[i+1:]
		rest = rest[:i]
		v.BuildMetadata = strings.Split(meta, ".")
		for _, m := range v.BuildMetadata {
			if !isIdentifier(m) {
				return V{}, fmt.Errorf("%w: %q has bad build metadata", ErrSyntax, s)
			}
		}
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		v.PreRelease = rest[i+1:]
		rest = rest[:i]
		for _, p := range strings.Split(v.PreRelease, ".") {
			if !isIdentifier(p) {
				return V{}, fmt.Errorf("%w: %q has bad pre-release", ErrSyntax, s)
			}
		}
	}
	core := strings.Split(rest, ".")
	if len(core) != 3 {
		return V{}, fmt.Errorf("%w: %q must have 3 numeric parts", ErrSyntax, s)
	}
	nums := [3]uint{}
	for i, c := range core {
		if c == "" || (len(c) > 1 && c[0] == '0') {
			return V{}, fmt.Errorf("%w: %q has bad numeric part", ErrSyntax, s)
		}
		n, err := strconv.ParseUint(c, 10, 0)
		if err != nil {
			return V{}, fmt.Errorf("%w: %q has bad numeric part", ErrSyntax, s)
		}
		nums[i] = uint(n)
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '-' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
