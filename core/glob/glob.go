// Package glob implements the shell-style patterns used by the triplet rule
// tables.
//
// Supported syntax:
//   - "*" matches any run of characters, including none
//   - "?" matches exactly one character
//   - "[abc]", "[0-9]" match one character from a set or range
//   - "[!abc]" matches one character not in the set
//   - everything else matches literally
//
// Patterns are parsed once, at table construction time, so a malformed rule
// fails at package initialization rather than on some unlucky input.
package glob

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// patternGrammar is the participle grammar for a glob pattern: a flat
// sequence of wildcards, character classes and literal runs.
type patternGrammar struct {
	Elems []*elemGrammar `parser:"@@*"`
}

type elemGrammar struct {
	Any     bool    `parser:"  @'*'"`
	One     bool    `parser:"| @'?'"`
	Class   *string `parser:"| @Class"`
	Literal *string `parser:"| @Literal"`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Class", Pattern: `\[[^\]]+\]`},
	{Name: "Wild", Pattern: `[*?]`},
	{Name: "Literal", Pattern: `[^*?\[]+`},
})

var patternParser = participle.MustBuild[patternGrammar](
	participle.Lexer(patternLexer),
)

type elemKind int

const (
	kindLiteral elemKind = iota
	kindAny
	kindOne
	kindClass
)

type elem struct {
	kind  elemKind
	lit   string
	class *charClass
}

// charClass is a bracket expression such as [0-9] or [!ab].
type charClass struct {
	negate bool
	ranges [][2]byte
}

func (c *charClass) contains(b byte) bool {
	in := false
	for _, r := range c.ranges {
		if b >= r[0] && b <= r[1] {
			in = true
			break
		}
	}
	return in != c.negate
}

// Pattern is a compiled glob pattern. A Pattern is immutable and safe for
// concurrent use.
type Pattern struct {
	src   string
	elems []elem
}

// Compile parses a glob pattern.
func Compile(src string) (*Pattern, error) {
	p := &Pattern{src: src}
	if src == "" {
		return p, nil
	}

	parsed, err := patternParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", src, err)
	}

	for _, e := range parsed.Elems {
		switch {
		case e.Any:
			// Collapse "**" into a single star.
			if n := len(p.elems); n > 0 && p.elems[n-1].kind == kindAny {
				continue
			}
			p.elems = append(p.elems, elem{kind: kindAny})
		case e.One:
			p.elems = append(p.elems, elem{kind: kindOne})
		case e.Class != nil:
			class, err := parseClass(*e.Class)
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", src, err)
			}
			p.elems = append(p.elems, elem{kind: kindClass, class: class})
		case e.Literal != nil:
			p.elems = append(p.elems, elem{kind: kindLiteral, lit: *e.Literal})
		}
	}
	return p, nil
}

// MustCompile is like Compile but panics if the pattern is malformed.
// It is intended for package-level rule tables.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// MustCompileAll compiles every pattern in srcs, in order.
func MustCompileAll(srcs ...string) []*Pattern {
	pats := make([]*Pattern, len(srcs))
	for i, src := range srcs {
		pats[i] = MustCompile(src)
	}
	return pats
}

// parseClass turns the raw "[...]" token into a charClass.
func parseClass(tok string) (*charClass, error) {
	body := tok[1 : len(tok)-1]
	c := &charClass{}
	if strings.HasPrefix(body, "!") {
		c.negate = true
		body = body[1:]
	}
	if body == "" {
		return nil, fmt.Errorf("empty character class %s", tok)
	}

	for i := 0; i < len(body); i++ {
		lo := body[i]
		if i+2 < len(body) && body[i+1] == '-' {
			hi := body[i+2]
			if hi < lo {
				return nil, fmt.Errorf("reversed range %c-%c in %s", lo, hi, tok)
			}
			c.ranges = append(c.ranges, [2]byte{lo, hi})
			i += 2
			continue
		}
		c.ranges = append(c.ranges, [2]byte{lo, lo})
	}
	return c, nil
}

// Match reports whether s matches the whole pattern.
func (p *Pattern) Match(s string) bool {
	return matchElems(p.elems, s)
}

// String returns the source text of the pattern.
func (p *Pattern) String() string {
	return p.src
}

// Literal reports whether the pattern contains no wildcards or classes,
// i.e. it only matches its own source text.
func (p *Pattern) Literal() bool {
	for _, e := range p.elems {
		if e.kind != kindLiteral {
			return false
		}
	}
	return true
}

func matchElems(elems []elem, s string) bool {
	for len(elems) > 0 {
		e := elems[0]
		switch e.kind {
		case kindAny:
			rest := elems[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if matchElems(rest, s[i:]) {
					return true
				}
			}
			return false
		case kindOne:
			if s == "" {
				return false
			}
			s = s[1:]
		case kindClass:
			if s == "" || !e.class.contains(s[0]) {
				return false
			}
			s = s[1:]
		case kindLiteral:
			if !strings.HasPrefix(s, e.lit) {
				return false
			}
			s = s[len(e.lit):]
		}
		elems = elems[1:]
	}
	return s == ""
}

// MatchAny reports whether s matches at least one of the patterns.
func MatchAny(s string, pats ...*Pattern) bool {
	for _, p := range pats {
		if p.Match(s) {
			return true
		}
	}
	return false
}

// Set is an ordered list of patterns, written and printed as "a | b | c"
// the way case arms are written in shell scripts.
type Set []*Pattern

// NewSet compiles each alternative, in order.
func NewSet(srcs ...string) Set {
	return Set(MustCompileAll(srcs...))
}

// Match reports whether s matches any alternative.
func (s Set) Match(str string) bool {
	return MatchAny(str, s...)
}

func (s Set) String() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.src
	}
	return strings.Join(parts, " | ")
}
