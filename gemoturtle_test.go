package gemoturtle

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

var plantRule = Rule{
	Trigger:     'F',
	Replacement: ParseSequence("FF+[+F-F-F]-[-F+F+F]"),
}

func fibonacci() *LSystem {
	return New(ParseSequence("A"), NewRuleSet(
		Rule{'A', ParseSequence("AB")},
		Rule{'B', ParseSequence("A")},
	))
}

type recordingDiagnostics struct {
	generations []uint
	lengths     []int
}

func (rd *recordingDiagnostics) Generated(generation uint, length int) {
	rd.generations = append(rd.generations, generation)
	rd.lengths = append(rd.lengths, length)
}

func TestLSystem_Advance_Plant(t *testing.T) {
	ls := New(ParseSequence("F"), NewRuleSet(plantRule))
	ls.Advance()

	if ls.Generation() != 1 {
		t.Errorf("Generation() = %d, want 1", ls.Generation())
	}
	if got := len(ls.Sequence()); got != 20 {
		t.Errorf("len(Sequence()) = %d, want 20", got)
	}
	if got := ls.Sequence().String(); got != "FF+[+F-F-F]-[-F+F+F]" {
		t.Errorf("Sequence() = %q", got)
	}
}

func TestLSystem_Advance_Fibonacci(t *testing.T) {
	ls := fibonacci()
	want := []int{1, 2, 3, 5, 8}
	sentences := []string{"A", "AB", "ABA", "ABAAB", "ABAABABA"}

	for gen, length := range want {
		if ls.Generation() != uint(gen) {
			t.Fatalf("Generation() = %d, want %d", ls.Generation(), gen)
		}
		if len(ls.Sequence()) != length {
			t.Errorf("generation %d: length = %d, want %d", gen, len(ls.Sequence()), length)
		}
		if ls.Sequence().String() != sentences[gen] {
			t.Errorf("generation %d: sequence = %q, want %q", gen, ls.Sequence(), sentences[gen])
		}
		ls.Advance()
	}
}

func TestLSystem_Determinism(t *testing.T) {
	rules := NewRuleSet(plantRule, Rule{'X', ParseSequence("F[+X][-X]FX")})
	a := New(ParseSequence("XF"), rules)
	b := New(ParseSequence("XF"), rules)

	ctx := context.Background()
	if err := a.AdvanceUntil(ctx, 4, Limit{}); err != nil {
		t.Fatal(err)
	}
	if err := b.AdvanceUntil(ctx, 4, Limit{}); err != nil {
		t.Fatal(err)
	}
	if !a.Sequence().Equal(b.Sequence()) {
		t.Error("two identical derivations produced different sequences")
	}
}

func TestLSystem_GrowthLaw(t *testing.T) {
	for k := 1; k <= 4; k++ {
		replacement := make(Sequence, k)
		for i := range replacement {
			replacement[i] = 'S'
		}
		ls := New(Sequence{'S'}, NewRuleSet(Rule{'S', replacement}))

		expected := 1
		for n := 0; n <= 6; n++ {
			if len(ls.Sequence()) != expected {
				t.Errorf("k=%d n=%d: length = %d, want %d", k, n, len(ls.Sequence()), expected)
			}
			ls.Advance()
			expected *= k
		}
	}
}

func TestLSystem_EmptyAxiom(t *testing.T) {
	ls := New(nil, NewRuleSet(plantRule))
	ls.Advance()
	ls.Advance()

	if ls.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", ls.Generation())
	}
	if len(ls.Sequence()) != 0 {
		t.Errorf("Sequence() = %q, want empty", ls.Sequence())
	}
}

func TestLSystem_AdvanceWithin(t *testing.T) {
	ls := fibonacci()

	err := ls.AdvanceUntil(context.Background(), 10, Limit{MaxLength: 20})
	var growth *GrowthError
	if !errors.As(err, &growth) {
		t.Fatalf("AdvanceUntil() error = %v, want *GrowthError", err)
	}
	// 13 letters at generation 5, 21 would be next
	if ls.Generation() != 5 || len(ls.Sequence()) != 13 {
		t.Errorf("state after refusal: generation %d length %d, want 5 and 13", ls.Generation(), len(ls.Sequence()))
	}
	if growth.Generation != 6 || growth.Length != 21 {
		t.Errorf("GrowthError = %+v", growth)
	}

	err = New(Sequence{'A'}, nil).AdvanceUntil(context.Background(), 5, Limit{MaxGeneration: 3})
	if !errors.As(err, &growth) || growth.Generation != 4 {
		t.Errorf("AdvanceUntil() with generation limit: %v", err)
	}
}

func TestLSystem_AdvanceUntil_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ls := fibonacci()
	if err := ls.AdvanceUntil(ctx, 3, Limit{}); !errors.Is(err, context.Canceled) {
		t.Errorf("AdvanceUntil() error = %v, want context.Canceled", err)
	}
	if ls.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", ls.Generation())
	}
}

func TestLSystem_Reset(t *testing.T) {
	ls := fibonacci()
	ls.Advance()
	ls.Advance()
	ls.Reset()

	if ls.Generation() != 0 || ls.Sequence().String() != "A" {
		t.Errorf("after Reset: generation %d sequence %q", ls.Generation(), ls.Sequence())
	}
}

func TestLSystem_Diagnostics(t *testing.T) {
	rd := &recordingDiagnostics{}
	ls := fibonacci()
	ls.Diagnostics = rd

	if err := ls.AdvanceUntil(context.Background(), 3, Limit{}); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(rd.generations) != "[1 2 3]" || fmt.Sprint(rd.lengths) != "[2 3 5]" {
		t.Errorf("diagnostics got generations %v lengths %v", rd.generations, rd.lengths)
	}
}

func TestGenerateNext_DoesNotAlias(t *testing.T) {
	rules := NewRuleSet(Rule{'A', ParseSequence("AB")})
	current := ParseSequence("AA")
	next := GenerateNext(current, rules)
	next[0] = 'Z'

	if current.String() != "AA" || rules.Lookup('A').String() != "AB" {
		t.Error("GenerateNext output aliases its inputs")
	}
}

func BenchmarkGenerateNext(b *testing.B) {
	ls := New(ParseSequence("F"), NewRuleSet(plantRule))
	if err := ls.AdvanceUntil(context.Background(), 4, Limit{}); err != nil {
		b.Fatal(err)
	}
	current := ls.Sequence()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		GenerateNext(current, ls.Rules)
	}
}
