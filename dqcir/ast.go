package dqcir

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Literal is a DQCIR literal: a bare name or a name prefixed with "-".
type Literal struct {
	Neg  bool   `@"-"?`
	Name string `@Ident`
}

// ForallStmt declares one or more universal variables.
type ForallStmt struct {
	Vars []string `"forall" "(" @Ident ("," @Ident)* ")"`
}

// ExistsStmt declares one or more existential variables. An existential
// declared here with no later DependStmt depends, by Henkin default, on
// every universal declared textually before this line.
type ExistsStmt struct {
	Vars []string `"exists" "(" @Ident ("," @Ident)* ")"`
}

// DependStmt gives the explicit dependency set of one existential,
// overriding its Henkin default.
type DependStmt struct {
	Existential string   `"depend" "(" @Ident`
	Deps        []string `("," @Ident)* ")"`
}

// OutputStmt names the gate whose value is the formula's output.
type OutputStmt struct {
	Gate string `"output" "(" @Ident ")"`
}

// GateStmt defines a gate: name = op(lit, lit, ...). Op is matched
// case-insensitively against "and"/"or"/"xor" once parsed, not by the
// grammar itself.
type GateStmt struct {
	Name   string     `@Ident "="`
	Op     string     `@Ident`
	Inputs []*Literal `"(" (@@ ("," @@)*)? ")"`
}

// Statement is one non-blank, non-comment DQCIR line.
type Statement struct {
	Forall *ForallStmt `  @@`
	Exists *ExistsStmt `| @@`
	Depend *DependStmt `| @@`
	Output *OutputStmt `| @@`
	Gate   *GateStmt   `| @@`
}

var dqcirLexer = lexer.MustSimple([]lexer.SimpleRule{
	// The original dqcir_parser.cpp accepts any non-empty comma/paren-
	// delimited token as a name, including purely numeric ones (the
	// canonical QCIR/DQCIR convention), so this must not require a
	// leading letter or underscore.
	{Name: "Ident", Pattern: `[A-Za-z0-9_]+`},
	{Name: "Punct", Pattern: `[(),=-]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

var statementParser = participle.MustBuild[Statement](
	participle.Lexer(dqcirLexer),
	participle.Elide("Whitespace"),
)
