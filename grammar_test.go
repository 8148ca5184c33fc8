package gemoturtle

import "testing"

func TestRuleSet_Lookup(t *testing.T) {
	rs := NewRuleSet(Rule{'F', ParseSequence("F+F")})

	if got := rs.Lookup('F').String(); got != "F+F" {
		t.Errorf("Lookup('F') = %q, want %q", got, "F+F")
	}
	if got := rs.Lookup('+').String(); got != "+" {
		t.Errorf("Lookup('+') = %q, want identity", got)
	}

	var nilSet *RuleSet
	if got := nilSet.Lookup('Q').String(); got != "Q" {
		t.Errorf("nil RuleSet Lookup('Q') = %q, want identity", got)
	}
}

func TestRuleSet_Register_FirstWins(t *testing.T) {
	rs := NewRuleSet()
	if !rs.Register('F', ParseSequence("FF")) {
		t.Error("first Register() = false, want true")
	}
	if rs.Register('F', ParseSequence("G")) {
		t.Error("duplicate Register() = true, want false")
	}
	if got := rs.Lookup('F').String(); got != "FF" {
		t.Errorf("Lookup('F') = %q, want the first registration", got)
	}

	rs.Set('F', ParseSequence("G"))
	if got := rs.Lookup('F').String(); got != "G" {
		t.Errorf("Lookup('F') after Set = %q, want %q", got, "G")
	}
}

func TestRuleSet_Register_Copies(t *testing.T) {
	replacement := ParseSequence("AB")
	rs := NewRuleSet(Rule{'A', replacement})
	replacement[0] = 'Z'

	if got := rs.Lookup('A').String(); got != "AB" {
		t.Errorf("Lookup('A') = %q, the rule set kept a reference to the caller's slice", got)
	}
}

func TestRuleSet_Rules(t *testing.T) {
	rs := NewRuleSet(Rule{'B', ParseSequence("A")}, Rule{'A', ParseSequence("AB")})
	rules := rs.Rules()

	if rs.Len() != 2 || len(rules) != 2 {
		t.Fatalf("Len() = %d, len(Rules()) = %d, want 2", rs.Len(), len(rules))
	}
	if rules[0].String() != "A=AB" || rules[1].String() != "B=A" {
		t.Errorf("Rules() = %v", rules)
	}
}

func TestParseRule(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"F=FF+[+F-F-F]-[-F+F+F]", "F=FF+[+F-F-F]-[-F+F+F]", false},
		{"A -> AB", "A=AB", false},
		{"B→A", "B=A", false},
		{"X=", "X=", false},
		{"F=F->F", "F=F->F", false},
		{"FF=F", "", true},
		{"=F", "", true},
		{"F", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseRule(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRule(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && r.String() != tt.want {
				t.Errorf("ParseRule(%q) = %q, want %q", tt.in, r, tt.want)
			}
		})
	}
}
