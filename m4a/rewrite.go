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

package m4a

import (
	"github.com/m4a2pret/m4a2pret/xref"
)

// Rewriter returns a rewriter with a definition for every voicegroup and
// keysplit table discovered so far.
func (ctx *Context) Rewriter() *xref.Rewriter {
	rw := xref.NewRewriter()
	for _, vg := range ctx.VoiceGroups {
		rw.Define(VoiceGroupNamespace, vg.Offset, vg.Symbol())
	}
	for _, ks := range ctx.Keysplits {
		rw.Define(KeysplitNamespace, ks.Offset, ks.Symbol())
	}
	return rw
}

// Rewrite replaces the reference tokens in the lines of every voicegroup. It
// should be called once the song table walk is complete.
func (ctx *Context) Rewrite() error {
	rw := ctx.Rewriter()
	for _, vg := range ctx.VoiceGroups {
		if err := rw.RewriteAll(vg.Lines[:]); err != nil {
			return err
		}
	}
	return nil
}
