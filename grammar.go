package gemoturtle

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

type Letter rune

type Sequence []Letter

// ParseSequence reads a sequence one rune per letter
func ParseSequence(s string) Sequence {
	return Sequence([]Letter(s))
}

// Sequence stringifier
func (seq Sequence) String() string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, l := range seq {
		b.WriteRune(rune(l))
	}
	return b.String()
}

// Equal reports whether both sequences hold the same letters in the same order
func (seq Sequence) Equal(other Sequence) bool {
	if len(seq) != len(other) {
		return false
	}
	for i := range seq {
		if seq[i] != other[i] {
			return false
		}
	}
	return true
}

type Rule struct {
	Trigger     Letter
	Replacement Sequence
}

func (r Rule) String() string {
	return string(r.Trigger) + "=" + r.Replacement.String()
}

// Separators accepted by ParseRule, longest first
var ruleSeparators = []string{"->", "→", "="}

// ParseRule reads a rule given as "F=FF+F", "F->FF+F" or "F→FF+F".
// The first separator in s splits it, so replacements may contain separators themselves.
func ParseRule(s string) (Rule, error) {
	at, sep := -1, ""
	for _, candidate := range ruleSeparators {
		if i := strings.Index(s, candidate); i >= 0 && (at < 0 || i < at) {
			at, sep = i, candidate
		}
	}
	if at < 0 {
		return Rule{}, errors.Errorf("rule %q: missing separator", s)
	}

	trigger := []rune(strings.TrimSpace(s[:at]))
	if len(trigger) != 1 {
		return Rule{}, errors.Errorf("rule %q: trigger must be a single letter, got %q", s, string(trigger))
	}
	return Rule{
		Trigger:     Letter(trigger[0]),
		Replacement: ParseSequence(strings.TrimSpace(s[at+len(sep):])),
	}, nil
}

// RuleSet maps each letter to at most one replacement. Letters without a rule rewrite to themselves.
// A RuleSet holds no derivation state and may be shared between several LSystem.
type RuleSet struct {
	productions map[Letter]Sequence
}

func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{productions: make(map[Letter]Sequence, len(rules))}
	for _, r := range rules {
		rs.Register(r.Trigger, r.Replacement)
	}
	return rs
}

// Register adds a rule for trigger. If trigger already has one, the first registration is kept and false is returned.
func (rs *RuleSet) Register(trigger Letter, replacement Sequence) bool {
	if rs.productions == nil {
		rs.productions = make(map[Letter]Sequence)
	}
	if _, ok := rs.productions[trigger]; ok {
		return false
	}
	rs.productions[trigger] = append(Sequence(nil), replacement...)
	return true
}

// Set registers the rule for trigger, replacing any existing one
func (rs *RuleSet) Set(trigger Letter, replacement Sequence) {
	if rs.productions == nil {
		rs.productions = make(map[Letter]Sequence)
	}
	rs.productions[trigger] = append(Sequence(nil), replacement...)
}

// Lookup returns the replacement for l, or l alone if there is no rule for it
func (rs *RuleSet) Lookup(l Letter) Sequence {
	if replacement, ok := rs.production(l); ok {
		return replacement
	}
	return Sequence{l}
}

func (rs *RuleSet) production(l Letter) (Sequence, bool) {
	if rs == nil {
		return nil, false
	}
	replacement, ok := rs.productions[l]
	return replacement, ok
}

// outputSize is the length of l's image
func (rs *RuleSet) outputSize(l Letter) int {
	if replacement, ok := rs.production(l); ok {
		return len(replacement)
	}
	return 1
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.productions)
}

// Rules lists the registered rules ordered by trigger
func (rs *RuleSet) Rules() []Rule {
	out := make([]Rule, 0, rs.Len())
	if rs == nil {
		return out
	}
	for trigger, replacement := range rs.productions {
		out = append(out, Rule{Trigger: trigger, Replacement: replacement})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Trigger < out[j].Trigger
	})
	return out
}
