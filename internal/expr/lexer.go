package expr

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokDoubleSlash
	tokPercent
	tokDoubleStar
	tokLParen
	tokRParen
)

var tokenNames = map[tokenKind]string{
	tokEOF:         "end of input",
	tokNumber:      "number",
	tokPlus:        "'+'",
	tokMinus:       "'-'",
	tokStar:        "'*'",
	tokSlash:       "'/'",
	tokDoubleSlash: "'//'",
	tokPercent:     "'%'",
	tokDoubleStar:  "'**'",
	tokLParen:      "'('",
	tokRParen:      "')'",
}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind  tokenKind
	pos   int
	value Value
}

// lex splits src into tokens. Anything that is not part of the arithmetic
// grammar fails here, before a tree is ever built.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			tok, next, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			if strings.HasPrefix(src[i:], "**") {
				toks = append(toks, token{kind: tokDoubleStar, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, pos: i})
				i++
			}
		case c == '/':
			if strings.HasPrefix(src[i:], "//") {
				toks = append(toks, token{kind: tokDoubleSlash, pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokSlash, pos: i})
				i++
			}
		case c == '%':
			toks = append(toks, token{kind: tokPercent, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case strings.HasPrefix(src[i:], "<<") || strings.HasPrefix(src[i:], ">>"):
			return nil, &UnsupportedOperatorError{Pos: i, Op: src[i : i+2]}
		case strings.IndexByte("^&|~@", c) >= 0:
			return nil, &UnsupportedOperatorError{Pos: i, Op: string(c)}
		case c == '.':
			return nil, &UnsafeExpressionError{Pos: i, Reason: "attribute access"}
		case c == '\'' || c == '"':
			return nil, &UnsafeExpressionError{Pos: i, Reason: "string literal"}
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if r == '_' || unicode.IsLetter(r) {
				j := i + size
				for j < len(src) {
					r2, s2 := utf8.DecodeRuneInString(src[j:])
					if r2 != '_' && !unicode.IsLetter(r2) && !unicode.IsDigit(r2) {
						break
					}
					j += s2
				}
				return nil, &UnsafeExpressionError{Pos: i, Reason: fmt.Sprintf("identifier %q", src[i:j])}
			}
			return nil, &UnsafeExpressionError{Pos: i, Reason: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

// lexNumber scans a decimal literal starting at i: digits with optional
// single underscores between them, an optional fraction and an optional exponent.
func lexNumber(src string, i int) (token, int, error) {
	start := i
	isFloat := false

	j, ok := scanDigits(src, i)
	if !ok {
		return token{}, 0, invalidLiteral(src, start)
	}
	intPart := src[i:j]
	i = j

	if i < len(src) && src[i] == '.' {
		isFloat = true
		i++
		if i < len(src) && isDigit(src[i]) {
			if i, ok = scanDigits(src, i); !ok {
				return token{}, 0, invalidLiteral(src, start)
			}
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		isFloat = true
		i++
		if i < len(src) && (src[i] == '+' || src[i] == '-') {
			i++
		}
		if i >= len(src) || !isDigit(src[i]) {
			return token{}, 0, invalidLiteral(src, start)
		}
		if i, ok = scanDigits(src, i); !ok {
			return token{}, 0, invalidLiteral(src, start)
		}
	}
	if i < len(src) {
		r, _ := utf8.DecodeRuneInString(src[i:])
		if r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return token{}, 0, invalidLiteral(src, start)
		}
	}

	text := strings.ReplaceAll(src[start:i], "_", "")
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			// Only range errors are possible here; they parse to ±Inf.
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return token{}, 0, invalidLiteral(src, start)
			}
		}
		return token{kind: tokNumber, pos: start, value: Float(f)}, i, nil
	}

	digits := strings.ReplaceAll(intPart, "_", "")
	if len(digits) > 1 && digits[0] == '0' && strings.Trim(digits, "0") != "" {
		return token{}, 0, &UnsafeExpressionError{Pos: start, Reason: "leading zeros in decimal literal"}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return token{}, 0, invalidLiteral(src, start)
	}
	return token{kind: tokNumber, pos: start, value: bigValue(n)}, i, nil
}

// scanDigits consumes [0-9](_?[0-9])* and reports the end offset.
// A leading '.' (as in ".5") yields an empty integer part.
func scanDigits(src string, i int) (int, bool) {
	if i < len(src) && src[i] == '.' {
		return i, true
	}
	if i >= len(src) || !isDigit(src[i]) {
		return i, false
	}
	i++
	for i < len(src) {
		switch {
		case isDigit(src[i]):
			i++
		case src[i] == '_':
			if i+1 >= len(src) || !isDigit(src[i+1]) {
				return i, false
			}
			i += 2
		default:
			return i, true
		}
	}
	return i, true
}

func invalidLiteral(src string, start int) error {
	end := start
	for end < len(src) && !strings.ContainsRune(" \t\r\n+-*/%()", rune(src[end])) {
		end++
	}
	return &UnsafeExpressionError{Pos: start, Reason: fmt.Sprintf("invalid numeric literal %q", src[start:end])}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
