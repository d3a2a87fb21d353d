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

package output

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/paths"
)

// Files is the text of each output file keyed by the slash separated path of
// the file relative to the root of the tree.
type Files map[string]string

// Paths returns the relative paths in sorted order.
func (f Files) Paths() []string {
	l := make([]string, 0, len(f))
	for p := range f {
		l = append(l, p)
	}
	sort.Strings(l)
	return l
}

// Write every file under the root directory. Directories are created as
// required and existing files are replaced.
func (f Files) Write(root string) error {
	for _, p := range f.Paths() {
		fn := paths.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(fn), 0o755); err != nil {
			return curated.Errorf(OutputError, err)
		}
		if err := os.WriteFile(fn, []byte(f[p]), 0o644); err != nil {
			return curated.Errorf(OutputError, err)
		}
	}
	return nil
}
