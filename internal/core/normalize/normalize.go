// Package normalize cleans user-entered text before it is stored or compared
//
// Name pipeline
// 1 drop control characters and invalid UTF-8
// 2 Unicode NFC
// 3 strip format characters such as ZWJ and BOM
// 4 collapse whitespace to single spaces and trim
//
// Key additionally case folds and width folds Name, so "ＢＡＮＡＮＡ" and "banana" compare equal
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers are stateful, so each call takes its own chain from a pool
var (
	namePool = sync.Pool{New: func() any {
		return transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.Cf)))
	}}
	keyPool = sync.Pool{New: func() any {
		return transform.Chain(cases.Fold(), width.Fold, norm.NFC)
	}}
	labelPool = sync.Pool{New: func() any {
		return cases.Title(language.English)
	}}
)

func apply(p *sync.Pool, s string) string {
	tr := p.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	p.Put(tr)
	return out
}

// Name returns the display form of a single-line name such as a food or a baby
func Name(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&namePool, Sanitize(s)), false)
}

// Key returns the comparison form of a name; two names collide when their keys match
func Key(s string) string {
	n := Name(s)
	if n == "" {
		return ""
	}
	return apply(&keyPool, n)
}

// Notes cleans free text, keeping line breaks but collapsing other whitespace runs
func Notes(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(apply(&namePool, Sanitize(s)), true)
}

// Label title-cases a stored lower-case token such as "loved" for display
func Label(s string) string {
	if s == "" {
		return ""
	}
	return apply(&labelPool, strings.ReplaceAll(s, "_", " "))
}

// collapseSpaces turns whitespace runs into one space and trims the edges
// with keepLines a run containing a line break becomes a single newline
func collapseSpaces(s string, keepLines bool) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL && keepLines {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}
