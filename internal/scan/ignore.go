package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ignoreRule is one user-supplied ignore entry. An entry containing both a
// "{" and a "}" additionally carries a regex built from the text between
// the first "{" and the following "}". The raw string always participates
// in the literal checks, braces included, so a rule with invalid regex
// syntax silently degrades to a substring match.
type ignoreRule struct {
	raw string
	re  *regexp.Regexp
}

// IgnoreList decides whether discovered archives are excluded from
// processing.
type IgnoreList struct {
	rules []ignoreRule
}

// NewIgnoreList compiles raw ignore entries. Malformed regex patterns are
// dropped at this stage; the rule itself is kept for the substring check.
func NewIgnoreList(raw []string) *IgnoreList {
	l := &IgnoreList{rules: make([]ignoreRule, 0, len(raw))}
	for _, r := range raw {
		rule := ignoreRule{raw: r}
		if open := strings.Index(r, "{"); open >= 0 && strings.Contains(r, "}") {
			pat := r[open+1:]
			if end := strings.Index(pat, "}"); end >= 0 {
				pat = pat[:end]
			}
			// re.fullmatch semantics: the pattern must cover the whole name.
			if re, err := regexp.Compile("^(?:" + pat + ")$"); err == nil {
				rule.re = re
			}
		}
		l.rules = append(l.rules, rule)
	}
	return l
}

// Ignored reports whether path matches any ignore rule. The absolute path
// is compared verbatim against every entry first; failing that, each rule's
// regex (if any) must fully match the base name, or the raw entry must
// appear as a substring of the base name.
func (l *IgnoreList) Ignored(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, rule := range l.rules {
		if rule.raw == abs {
			return true
		}
	}

	base := filepath.Base(path)
	for _, rule := range l.rules {
		if rule.re != nil && rule.re.MatchString(base) {
			return true
		}
		if strings.Contains(base, rule.raw) {
			return true
		}
	}
	return false
}

// Len returns the number of rules.
func (l *IgnoreList) Len() int { return len(l.rules) }
