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
	"io"

	"github.com/bradleyjkemp/memviz"
)

// GraphNode is an entity in the pointer graph of a run. Nodes are shared, so
// a voicegroup referred to by many songs is a single node.
type GraphNode struct {
	Label  string
	Offset uint32

	VoiceGroups []*GraphNode
	Keysplits   []*GraphNode
}

// Graph returns a node for every song in walk order. Each song node points to
// its voicegroup node, and voicegroup nodes point to the voicegroups and
// keysplit tables of their keysplit instruments.
func (ctx *Context) Graph() []*GraphNode {
	groups := make(map[uint32]*GraphNode)
	keysplits := make(map[uint32]*GraphNode)

	for _, ks := range ctx.Keysplits {
		keysplits[ks.Offset] = &GraphNode{Label: ks.Symbol(), Offset: ks.Offset}
	}
	for _, vg := range ctx.VoiceGroups {
		groups[vg.Offset] = &GraphNode{Label: vg.Symbol(), Offset: vg.Offset}
	}

	// links are made once every node exists because of cycles
	for _, vg := range ctx.VoiceGroups {
		n := groups[vg.Offset]
		for _, o := range vg.SubGroups {
			n.VoiceGroups = append(n.VoiceGroups, groups[o])
		}
		for _, o := range vg.Keysplits {
			n.Keysplits = append(n.Keysplits, keysplits[o])
		}
	}

	songs := make([]*GraphNode, 0, len(ctx.Songs))
	for _, s := range ctx.Songs {
		n := &GraphNode{Label: s.Symbol(), Offset: s.HeaderPointer}
		if s.Valid {
			n.VoiceGroups = []*GraphNode{groups[s.VoiceGroup]}
		}
		songs = append(songs, n)
	}

	return songs
}

// WriteGraph writes the pointer graph of the run to w in the Graphviz DOT
// format.
func (ctx *Context) WriteGraph(w io.Writer) {
	g := ctx.Graph()
	memviz.Map(w, &g)
}
