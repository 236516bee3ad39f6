package config

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionDouble is a "major.minor" version, the form Apple deployment targets
// take.
type VersionDouble struct {
	Major int
	Minor int
}

func (v VersionDouble) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersionDouble parses "major" or "major.minor".
func ParseVersionDouble(s string) (VersionDouble, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return VersionDouble{}, fmt.Errorf("version %q has more than 2 components", s)
	}
	var v VersionDouble
	var err error
	if v.Major, err = parseVersionComponent(s, parts[0]); err != nil {
		return VersionDouble{}, err
	}
	if len(parts) == 2 {
		if v.Minor, err = parseVersionComponent(s, parts[1]); err != nil {
			return VersionDouble{}, err
		}
	}
	return v, nil
}

// VersionTriple is a "major.minor.patch" version.
type VersionTriple struct {
	Major int
	Minor int
	Patch int
}

func (v VersionTriple) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersionTriple parses 1 to 3 dot-separated components, zero-filling the
// rest.
func ParseVersionTriple(s string) (VersionTriple, error) {
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return VersionTriple{}, fmt.Errorf("version %q has more than 3 components", s)
	}
	var v VersionTriple
	fields := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, part := range parts {
		n, err := parseVersionComponent(s, part)
		if err != nil {
			return VersionTriple{}, err
		}
		*fields[i] = n
	}
	return v, nil
}

// VersionNumber is a version triple with optional extra numeric components,
// e.g. "1.2.3.4" as seen in app store build numbers.
type VersionNumber struct {
	Triple VersionTriple
	Extra  []int
}

func (v VersionNumber) String() string {
	var b strings.Builder
	b.WriteString(v.Triple.String())
	for _, n := range v.Extra {
		fmt.Fprintf(&b, ".%d", n)
	}
	return b.String()
}

// ParseVersionNumber parses a dotted version of any length >= 1.
func ParseVersionNumber(s string) (VersionNumber, error) {
	parts := strings.Split(s, ".")
	if len(parts) <= 3 {
		triple, err := ParseVersionTriple(s)
		if err != nil {
			return VersionNumber{}, err
		}
		return VersionNumber{Triple: triple}, nil
	}
	triple, err := ParseVersionTriple(strings.Join(parts[:3], "."))
	if err != nil {
		return VersionNumber{}, err
	}
	extra := make([]int, 0, len(parts)-3)
	for _, part := range parts[3:] {
		n, err := parseVersionComponent(s, part)
		if err != nil {
			return VersionNumber{}, err
		}
		extra = append(extra, n)
	}
	return VersionNumber{Triple: triple, Extra: extra}, nil
}

// VersionCode packs the triple into the single integer Android uses for
// update ordering: MMmmmppp.
func (v VersionNumber) VersionCode() int32 {
	return int32(v.Triple.Major*1_000_000 + v.Triple.Minor*1_000 + v.Triple.Patch)
}

// WithBuildNumber returns a copy of v with number appended to the extra
// components.
func (v VersionNumber) WithBuildNumber(number int) VersionNumber {
	extra := make([]int, len(v.Extra), len(v.Extra)+1)
	copy(extra, v.Extra)
	return VersionNumber{Triple: v.Triple, Extra: append(extra, number)}
}

func parseVersionComponent(version, component string) (int, error) {
	n, err := strconv.Atoi(component)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("version %q contains component %q that isn't a valid number", version, component)
	}
	return n, nil
}
