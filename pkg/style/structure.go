package style

import (
	"errors"
	"fmt"

	"github.com/gorilla/css/scanner"
)

// ErrMalformedStylesheet reports block structure the CSS parser cannot
// handle: declarations or stray semicolons where a rule is expected, and
// rules nested inside a declaration block (Sass nesting, `&` selectors).
var ErrMalformedStylesheet = errors.New("style: malformed stylesheet")

type blockKind int

const (
	ruleBlock blockKind = iota
	declarationBlock
)

// at-rules whose block holds rules rather than declarations. Mirrors the
// parser's own list.
var ruleBlockAtRules = map[string]struct{}{
	"@document":            {},
	"@font-feature-values": {},
	"@keyframes":           {},
	"@media":               {},
	"@supports":            {},
}

// checkStructure walks the token stream and rejects input the parser would
// loop on or misread. Tokenizer errors are left for the parser to report.
func checkStructure(text string) error {
	s := scanner.New(text)
	stack := []blockKind{ruleBlock}
	inPrelude := false
	atRule := ""

	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			return nil
		case scanner.TokenS, scanner.TokenComment, scanner.TokenCDO, scanner.TokenCDC, scanner.TokenBOM:
			continue
		}

		if stack[len(stack)-1] == declarationBlock {
			if tok.Type != scanner.TokenChar {
				continue
			}
			switch tok.Value {
			case "{":
				return fmt.Errorf("%w: nested block at line %d, column %d", ErrMalformedStylesheet, tok.Line, tok.Column)
			case "}":
				stack = stack[:len(stack)-1]
			}
			continue
		}

		if !inPrelude {
			if tok.Type == scanner.TokenChar && tok.Value == "}" {
				if len(stack) == 1 {
					return nil
				}
				stack = stack[:len(stack)-1]
				continue
			}
			inPrelude = true
			atRule = ""
			if tok.Type == scanner.TokenAtKeyword {
				atRule = tok.Value
			}
		}
		if tok.Type != scanner.TokenChar {
			continue
		}
		switch tok.Value {
		case ";":
			if atRule == "" {
				return fmt.Errorf("%w: unexpected ; at line %d, column %d", ErrMalformedStylesheet, tok.Line, tok.Column)
			}
			inPrelude = false
		case "{":
			inPrelude = false
			if _, ok := ruleBlockAtRules[atRule]; ok {
				stack = append(stack, ruleBlock)
			} else {
				stack = append(stack, declarationBlock)
			}
		}
	}
}
