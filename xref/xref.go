// This file is part of m4a2pret.
//
// m4a2pret is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// m4a2pret is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with m4a2pret.  If not, see <https://www.gnu.org/licenses/>.

// Package xref resolves forward references in generated text.
//
// A fragment of text can refer to an entity before the entity has its final
// name. The reference is written as a token naming a namespace and the ROM
// offset of the entity:
//
//	voice_keysplit {vg:1dd0b4}, {ks:1dd5a4}
//
// Once every entity is known, each offset is defined with its final symbol
// and the tokens in every fragment are replaced:
//
//	rw := xref.NewRewriter()
//	rw.Define("vg", 0x1dd0b4, "voicegroup012")
//	rw.Define("ks", 0x1dd5a4, "KeySplitTable3")
//	s, err := rw.Rewrite(line)
//
// A token with no definition is an error.
package xref

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/m4a2pret/m4a2pret/curated"
)

// Sentinal error pattern.
const Unresolved = "xref: unresolved tokens (%s)"

// Token returns the reference token for an offset in a namespace.
func Token(namespace string, offset uint32) string {
	return fmt.Sprintf("{%s:%x}", namespace, offset)
}

// tokens are a lower case namespace and a hex offset in braces.
var tokenRegexp = regexp.MustCompile(`\{([a-z]+):([0-9a-f]+)\}`)

type key struct {
	namespace string
	offset    uint32
}

// Rewriter replaces reference tokens with their defined symbols.
type Rewriter struct {
	symbols map[key]string
}

// NewRewriter is the preferred method of initialisation for the Rewriter type.
func NewRewriter() *Rewriter {
	return &Rewriter{
		symbols: make(map[key]string),
	}
}

// Define the symbol for an offset in a namespace. A later definition for the
// same offset replaces an earlier one.
func (rw *Rewriter) Define(namespace string, offset uint32, symbol string) {
	rw.symbols[key{namespace: namespace, offset: offset}] = symbol
}

// Len returns the number of definitions.
func (rw *Rewriter) Len() int {
	return len(rw.symbols)
}

// Rewrite replaces every token in the text. The error lists every token that
// has no definition.
func (rw *Rewriter) Rewrite(text string) (string, error) {
	var missing []string

	s := tokenRegexp.ReplaceAllStringFunc(text, func(tok string) string {
		m := tokenRegexp.FindStringSubmatch(tok)
		off, err := strconv.ParseUint(m[2], 16, 32)
		if err == nil {
			if sym, ok := rw.symbols[key{namespace: m[1], offset: uint32(off)}]; ok {
				return sym
			}
		}
		missing = append(missing, tok)
		return tok
	})

	if len(missing) > 0 {
		return s, curated.Errorf(Unresolved, strings.Join(missing, ", "))
	}

	return s, nil
}

// RewriteAll rewrites every string in the slice in place. Every string is
// rewritten even if there is an error. The error lists the unresolved tokens
// of the whole slice, each token once.
func (rw *Rewriter) RewriteAll(text []string) error {
	missing := make(map[string]bool)

	for i := range text {
		s, err := rw.Rewrite(text[i])
		text[i] = s
		if err != nil {
			for _, tok := range tokenRegexp.FindAllString(s, -1) {
				missing[tok] = true
			}
		}
	}

	if len(missing) > 0 {
		l := make([]string, 0, len(missing))
		for tok := range missing {
			l = append(l, tok)
		}
		sort.Strings(l)
		return curated.Errorf(Unresolved, strings.Join(l, ", "))
	}

	return nil
}

// HasTokens returns true if the text contains any reference tokens.
func HasTokens(text string) bool {
	return tokenRegexp.MatchString(text)
}
