package pdftext

import (
	"bytes"
	"strconv"
	"strings"
)

// Lines assembles the text shown by a PDF content stream into ordered lines.
// String operands of the show operators (Tj, TJ, ', ") are concatenated;
// text-positioning operators that move vertically (Td/TD with a non-zero y,
// Tm with a new y, T*) start a new line. Blank output lines are dropped.
func Lines(content []byte) []string {
	var (
		r     = bytes.NewReader(content)
		stack []token
		cur   strings.Builder
		lines []string
		lastY string
	)

	endLine := func() {
		if s := cur.String(); strings.TrimSpace(s) != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	showStack := func() {
		for _, t := range stack {
			if t.kind == tokString {
				cur.WriteString(t.lit)
			}
		}
	}

	for r.Len() > 0 {
		tok := readToken(r)
		if tok.kind == tokEOF {
			break
		}
		if tok.kind != tokIdent {
			stack = append(stack, tok)
			continue
		}

		switch tok.lit {
		case "Tj", "TJ":
			showStack()
		case "'", "\"":
			// Both imply a move to the next line before showing.
			endLine()
			showStack()
		case "Td", "TD":
			if y := lastNumber(stack); y != "" && !isZero(y) {
				endLine()
			}
		case "Tm":
			if y := lastNumber(stack); y != "" && y != lastY {
				endLine()
				lastY = y
			}
		case "T*", "ET":
			endLine()
		}
		stack = stack[:0]
	}
	endLine()
	return lines
}

// lastNumber returns the literal of the trailing number operand, the y
// component of a positioning operator.
func lastNumber(stack []token) string {
	if len(stack) == 0 {
		return ""
	}
	t := stack[len(stack)-1]
	if t.kind != tokNumber {
		return ""
	}
	return t.lit
}

// isZero reports whether a number literal is zero ("0", "0.0", "-0").
func isZero(lit string) bool {
	f, err := strconv.ParseFloat(lit, 64)
	return err == nil && f == 0
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokName
	tokString
	tokNumber
	tokBegArr
	tokEndArr
	tokBegDict
	tokEndDict
	tokInvalid
)

type token struct {
	kind tokKind
	lit  string
}

func readToken(r *bytes.Reader) token {
	b, err := r.ReadByte()
	if err != nil {
		return token{kind: tokEOF}
	}
	switch {
	case b == '/':
		return readName(r)
	case isLetter(b) || b == '\'' || b == '"':
		return readIdent(r, b)
	case b == '[':
		return token{kind: tokBegArr}
	case b == ']':
		return token{kind: tokEndArr}
	case b == '(':
		return readString(r)
	case b == '<':
		if next, _ := r.ReadByte(); next == '<' {
			return token{kind: tokBegDict}
		}
		r.UnreadByte()
		return readHex(r)
	case b == '>':
		r.ReadByte()
		return token{kind: tokEndDict}
	case isBlank(b):
		skipBlank(r)
		return readToken(r)
	case b == '-' || b == '+' || isDigit(b):
		return readNumber(r, b)
	default:
		return token{kind: tokInvalid, lit: string(b)}
	}
}

func readIdent(r *bytes.Reader, first byte) token {
	var buf bytes.Buffer
	buf.WriteByte(first)
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if !isLetter(b) && !isDigit(b) && b != '*' && b != '\'' && b != '"' {
			r.UnreadByte()
			break
		}
		buf.WriteByte(b)
	}
	return token{kind: tokIdent, lit: buf.String()}
}

func readName(r *bytes.Reader) token {
	var buf bytes.Buffer
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if !isLetter(b) && !isDigit(b) && b != '_' && b != '.' && b != '-' {
			r.UnreadByte()
			break
		}
		buf.WriteByte(b)
	}
	return token{kind: tokName, lit: buf.String()}
}

// readString reads a literal string. Balanced parentheses nest; a backslash
// escapes the byte that follows it.
func readString(r *bytes.Reader) token {
	var buf bytes.Buffer
	depth := 1
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		switch b {
		case '\\':
			if esc, err := r.ReadByte(); err == nil {
				buf.WriteByte(unescape(esc))
			}
			continue
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return token{kind: tokString, lit: buf.String()}
			}
		}
		buf.WriteByte(b)
	}
	return token{kind: tokString, lit: buf.String()}
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	default:
		return b
	}
}

func readHex(r *bytes.Reader) token {
	// Whitespace may fall anywhere inside a hex string, even between the
	// two digits of a pair, so collect the digits first and pair them
	// afterwards. An odd final digit gets a zero low nibble.
	var digits []byte
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if b == '>' {
			break
		}
		if isHexDigit(b) {
			digits = append(digits, fromHex(b))
		}
	}

	var buf bytes.Buffer
	for i := 0; i < len(digits); i += 2 {
		hi := digits[i]
		lo := byte(0)
		if i+1 < len(digits) {
			lo = digits[i+1]
		}
		buf.WriteByte(hi<<4 | lo)
	}
	return token{kind: tokString, lit: buf.String()}
}

func readNumber(r *bytes.Reader, first byte) token {
	var buf bytes.Buffer
	buf.WriteByte(first)
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if !isDigit(b) && b != '.' {
			r.UnreadByte()
			break
		}
		buf.WriteByte(b)
	}
	return token{kind: tokNumber, lit: buf.String()}
}

func skipBlank(r *bytes.Reader) {
	for r.Len() > 0 {
		b, _ := r.ReadByte()
		if !isBlank(b) {
			r.UnreadByte()
			return
		}
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func fromHex(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == 0
}
