package matching

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/parallaxisjones/hex-chess/internal/errors"
	"github.com/parallaxisjones/hex-chess/internal/processing"
)

// TagOperator is the comparison a tag criterion makes.
type TagOperator int

const (
	OpEqual TagOperator = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
	OpContains // case-insensitive substring
	OpRegex
)

// playerTag is the pseudo-tag matching either player.
const playerTag = "_Player"

// TagCriterion is a single tag test.
type TagCriterion struct {
	TagName  string
	Value    string
	Operator TagOperator
	regex    *regexp.Regexp
}

// TagMatcher selects games by their tags. Besides the recorded tags it knows
// Variant, which also matches the slug and name of the variant the game was
// replayed as, and PlyCount, which falls back to the plies actually played.
type TagMatcher struct {
	criteria       []*TagCriterion
	substringMatch bool
	matchAll       bool
}

// NewTagMatcher creates a matcher requiring every criterion.
func NewTagMatcher() *TagMatcher {
	return &TagMatcher{matchAll: true}
}

// SetMatchAll sets whether all criteria must match or any one.
func (tm *TagMatcher) SetMatchAll(all bool) {
	tm.matchAll = all
}

// SetSubstringMatch makes later equality criteria match anywhere in the value.
func (tm *TagMatcher) SetSubstringMatch(use bool) {
	tm.substringMatch = use
}

// AddCriterion adds a tag criterion. It fails only on a bad regular expression.
func (tm *TagMatcher) AddCriterion(tagName, value string, op TagOperator) error {
	if op == OpEqual && tm.substringMatch {
		op = OpContains
	}
	c := &TagCriterion{TagName: tagName, Value: value, Operator: op}
	if op == OpRegex {
		re, err := regexp.Compile(value)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "tag %s: %v", tagName, err)
		}
		c.regex = re
	}
	if op == OpContains {
		c.Value = strings.ToLower(value)
	}
	tm.criteria = append(tm.criteria, c)
	return nil
}

// AddPlayerCriterion matches name anywhere in the White or Black tag.
func (tm *TagMatcher) AddPlayerCriterion(name string) {
	tm.criteria = append(tm.criteria, &TagCriterion{
		TagName:  playerTag,
		Value:    strings.ToLower(name),
		Operator: OpContains,
	})
}

// operators in match order: two-character forms first.
var operators = []struct {
	text string
	op   TagOperator
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"<>", OpNotEqual},
	{"!=", OpNotEqual},
	{"<", OpLessThan},
	{">", OpGreaterThan},
	{"=", OpEqual},
	{"~", OpRegex},
}

// ParseCriterion parses a line such as `Round >= "3"` or `White "Anna"`.
// Blank lines and lines starting with # are ignored.
func (tm *TagMatcher) ParseCriterion(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	end := strings.IndexAny(line, " \t<>=!~")
	if end <= 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "tag criterion %q has no value", line)
	}
	name := line[:end]
	rest := strings.TrimSpace(line[end:])

	op := OpEqual
	for _, o := range operators {
		if strings.HasPrefix(rest, o.text) {
			op = o.op
			rest = strings.TrimSpace(rest[len(o.text):])
			break
		}
	}
	if len(rest) >= 2 && rest[0] == '"' && rest[len(rest)-1] == '"' {
		rest = rest[1 : len(rest)-1]
	}
	return tm.AddCriterion(name, rest, op)
}

// LoadCriteria reads one criterion per line.
func (tm *TagMatcher) LoadCriteria(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		if err := tm.ParseCriterion(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// Match implements GameMatcher. A matcher without criteria matches everything.
func (tm *TagMatcher) Match(ga *processing.GameAnalysis) bool {
	if len(tm.criteria) == 0 {
		return true
	}
	for _, c := range tm.criteria {
		if tm.matchCriterion(ga, c) != tm.matchAll {
			return !tm.matchAll
		}
	}
	return tm.matchAll
}

// Name implements GameMatcher.
func (tm *TagMatcher) Name() string {
	return fmt.Sprintf("tags(%d)", len(tm.criteria))
}

// CriteriaCount returns the number of criteria.
func (tm *TagMatcher) CriteriaCount() int {
	return len(tm.criteria)
}

func (tm *TagMatcher) matchCriterion(ga *processing.GameAnalysis, c *TagCriterion) bool {
	values := tagValues(ga, c.TagName)
	if c.Operator == OpNotEqual {
		for _, v := range values {
			if strings.EqualFold(v, c.Value) {
				return false
			}
		}
		return true
	}
	for _, v := range values {
		if matchValue(v, c) {
			return true
		}
	}
	return false
}

// tagValues returns the values a criterion on name is tested against.
func tagValues(ga *processing.GameAnalysis, name string) []string {
	tags := ga.Record.Tags
	switch name {
	case playerTag:
		return present(tags["White"], tags["Black"])
	case "Variant":
		return present(tags["Variant"], ga.Variant.Slug, ga.Variant.Name)
	case "PlyCount":
		if v, ok := tags[name]; ok {
			return []string{v}
		}
		return []string{strconv.Itoa(ga.Game.Plies())}
	}
	if v, ok := tags[name]; ok {
		return []string{v}
	}
	return nil
}

func present(values ...string) []string {
	out := values[:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func matchValue(v string, c *TagCriterion) bool {
	switch c.Operator {
	case OpEqual:
		return strings.EqualFold(v, c.Value)
	case OpContains:
		return strings.Contains(strings.ToLower(v), c.Value)
	case OpRegex:
		return c.regex != nil && c.regex.MatchString(v)
	default:
		return compareOrdered(compareValues(v, c.Value), c.Operator)
	}
}

func compareOrdered(cmp int, op TagOperator) bool {
	switch op {
	case OpLessThan:
		return cmp < 0
	case OpLessOrEqual:
		return cmp <= 0
	case OpGreaterThan:
		return cmp > 0
	case OpGreaterOrEqual:
		return cmp >= 0
	}
	return false
}

// compareValues orders two tag values as dates (YYYY.MM.DD), then as
// numbers, then as case-folded strings.
func compareValues(a, b string) int {
	if da, db := parseDate(a), parseDate(b); da > 0 && db > 0 {
		return compareInts(da, db)
	}
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// parseDate encodes a YYYY.MM.DD date as YYYYMMDD, or returns 0. Missing or
// unknown ("??") month and day count as 1.
func parseDate(s string) int {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return 0
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year < 100 || year > 3000 {
		return 0
	}
	month, day := 1, 1
	if m, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && m >= 1 && m <= 12 {
		month = m
	}
	if len(parts) >= 3 {
		if d, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil && d >= 1 && d <= 31 {
			day = d
		}
	}
	return year*10000 + month*100 + day
}
