package gemoturtle

import (
	"context"
	"fmt"
)

// Diagnostics is notified after every rewrite. It is advisory only.
type Diagnostics interface {
	Generated(generation uint, length int)
}

// Limit bounds the growth of an LSystem. Zero fields mean no bound.
type Limit struct {
	MaxGeneration uint
	MaxLength     int
}

// GrowthError is returned when a rewrite would cross a Limit. The LSystem is left untouched.
type GrowthError struct {
	Generation uint
	Length     int
	Limit      Limit
}

func (e *GrowthError) Error() string {
	if e.Limit.MaxGeneration != 0 && e.Generation > e.Limit.MaxGeneration {
		return fmt.Sprintf("generation %d exceeds the limit of %d", e.Generation, e.Limit.MaxGeneration)
	}
	return fmt.Sprintf("generation %d would hold %d letters, over the limit of %d", e.Generation, e.Length, e.Limit.MaxLength)
}

func (l Limit) check(generation uint, length int) error {
	if (l.MaxGeneration != 0 && generation > l.MaxGeneration) || (l.MaxLength != 0 && length > l.MaxLength) {
		return &GrowthError{Generation: generation, Length: length, Limit: l}
	}
	return nil
}

type LSystem struct {
	Rules       *RuleSet
	Diagnostics Diagnostics

	axiom      Sequence
	generation uint
	sentence   Sequence
}

func New(axiom Sequence, rules *RuleSet) *LSystem {
	axiom = append(Sequence(nil), axiom...)
	return &LSystem{
		Rules:    rules,
		axiom:    axiom,
		sentence: axiom,
	}
}

// OutputSize returns the length GenerateNext(current, rules) will have
func OutputSize(current Sequence, rules *RuleSet) int {
	var val int
	for _, l := range current {
		val += rules.outputSize(l)
	}
	return val
}

// GenerateNext rewrites every letter of current through rules, concatenating the images in order.
// The output is always a freshly allocated sequence.
func GenerateNext(current Sequence, rules *RuleSet) Sequence {
	output := make(Sequence, OutputSize(current, rules))

	outputCursor := 0
	for _, l := range current {
		if replacement, ok := rules.production(l); ok {
			outputCursor += copy(output[outputCursor:], replacement)
		} else {
			output[outputCursor] = l
			outputCursor++
		}
	}
	return output
}

// Advance runs one rewrite
func (ls *LSystem) Advance() {
	ls.replace(GenerateNext(ls.sentence, ls.Rules))
}

// AdvanceWithin runs one rewrite unless the result would cross limit, in which case a *GrowthError is returned.
// The next size is computed before anything is allocated.
func (ls *LSystem) AdvanceWithin(limit Limit) error {
	if err := limit.check(ls.generation+1, OutputSize(ls.sentence, ls.Rules)); err != nil {
		return err
	}
	ls.Advance()
	return nil
}

// AdvanceUntil runs rewrites until the given generation is reached.
// ctx is checked between generations.
func (ls *LSystem) AdvanceUntil(ctx context.Context, generation uint, limit Limit) error {
	for ls.generation < generation {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ls.AdvanceWithin(limit); err != nil {
			return err
		}
	}
	return nil
}

func (ls *LSystem) replace(next Sequence) {
	ls.sentence = next
	ls.generation++

	if ls.Diagnostics != nil {
		ls.Diagnostics.Generated(ls.generation, len(ls.sentence))
	}
}

// Reset goes back to the axiom and generation 0
func (ls *LSystem) Reset() {
	ls.sentence = ls.axiom
	ls.generation = 0
}

// Sequence returns the current sentence. It must not be modified.
func (ls *LSystem) Sequence() Sequence {
	return ls.sentence
}

func (ls *LSystem) Axiom() Sequence {
	return ls.axiom
}

func (ls *LSystem) Generation() uint {
	return ls.generation
}
