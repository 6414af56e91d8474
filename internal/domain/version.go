package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadVersion = errors.New("bad version string")

type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion accepts "13.38.2", "Asterisk 13.38.2" and shorter forms like "16".
// Anything after the numeric part of a component ("2-cert1") is ignored.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		s = s[i+1:]
	}
	parts := strings.SplitN(s, ".", 3)
	var nums [3]int
	for i, p := range parts {
		end := 0
		for end < len(p) && p[end] >= '0' && p[end] <= '9' {
			end++
		}
		if end == 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, s)
		}
		n, err := strconv.Atoi(p[:end])
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrBadVersion, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) AtLeast(o Version) bool {
	if v.Major != o.Major {
		return v.Major > o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor > o.Minor
	}
	return v.Patch >= o.Patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
