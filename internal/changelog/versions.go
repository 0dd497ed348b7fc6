package changelog

import (
	"sort"
	"strconv"
	"strings"
)

// Versions models the release version list: the current (unreleased) label
// plus the stable released versions.
type Versions struct {
	Current string
	Stable  []string
}

// SortedStable returns the stable versions newest-first.
//
// Ordering is numeric per dotted component (v0.10.0 > v0.9.2), falling back
// to string comparison for non-numeric components. The input slice is not
// modified.
func (v Versions) SortedStable() []string {
	sorted := make([]string, len(v.Stable))
	copy(sorted, v.Stable)
	sort.Slice(sorted, func(i, j int) bool {
		return compareVersions(sorted[i], sorted[j]) > 0
	})
	return sorted
}

// All returns every version that gets a generated page: current first, then
// stable newest-first.
func (v Versions) All() []string {
	all := make([]string, 0, len(v.Stable)+1)
	if v.Current != "" {
		all = append(all, v.Current)
	}
	return append(all, v.SortedStable()...)
}

// compareVersions compares two version strings.
// Returns >0 if a is newer than b, <0 if older, 0 if equal.
//
// Release components compare numerically. Per semver precedence, a version
// with a pre-release suffix ranks below the same version without one
// (v1.0.0-rc1 < v1.0.0); pre-release suffixes compare by their own
// components.
func compareVersions(a, b string) int {
	arel, apre := splitVersion(a)
	brel, bpre := splitVersion(b)

	if c := compareComponents(arel, brel); c != 0 {
		return c
	}
	switch {
	case len(apre) == 0 && len(bpre) == 0:
		return 0
	case len(apre) == 0:
		return 1
	case len(bpre) == 0:
		return -1
	}
	return compareComponents(apre, bpre)
}

func compareComponents(as, bs []string) int {
	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		var ac, bc string
		if i < len(as) {
			ac = as[i]
		}
		if i < len(bs) {
			bc = bs[i]
		}
		ai, aerr := strconv.Atoi(ac)
		bi, berr := strconv.Atoi(bc)
		switch {
		case aerr == nil && berr == nil:
			if ai != bi {
				return ai - bi
			}
		default:
			if c := strings.Compare(ac, bc); c != 0 {
				return c
			}
		}
	}
	return 0
}

func splitVersion(v string) (release, prerelease []string) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil, nil
	}
	rel, pre, _ := strings.Cut(v, "-")
	release = strings.Split(rel, ".")
	if pre != "" {
		prerelease = strings.Split(strings.ReplaceAll(pre, "-", "."), ".")
	}
	return release, prerelease
}
