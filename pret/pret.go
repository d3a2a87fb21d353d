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

// Package pret inspects an existing pret decompilation tree.
//
// The numbering of the songs, voicegroups and keysplit tables extracted from a
// ROM follows on from the entries already in the tree. Inspect() finds the
// last number used for each:
//
//	tr, err := pret.Inspect("/home/user/pokeemerald")
//	if err != nil {
//		return err
//	}
//	ctx := m4a.NewContext(r, tr.Baselines())
//
// Inspect() also identifies the project from its README and reads the SHA-1
// checksum of the ROM that the project builds, if the checksum file exists.
package pret

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/m4a2pret/m4a2pret/curated"
	"github.com/m4a2pret/m4a2pret/m4a"
	"github.com/m4a2pret/m4a2pret/paths"
)

// Sentinal error pattern.
const InspectError = "pret: %v"

// Projects lists the pret projects that can be identified.
var Projects = []string{"pokeruby", "pokefirered", "pokeemerald"}

// Tree is the result of inspecting a pret tree.
type Tree struct {
	Dir string

	// name of the project. empty if the project could not be identified
	Project string

	// checksum of the ROM built by the project. empty if there is no checksum
	// file
	SHA1 string

	// the last number used for each kind of entity. zero if there are none
	Songs       int
	VoiceGroups int
	Keysplits   int
}

var (
	songRegexp       = regexp.MustCompile(`^\s*song\s`)
	voiceGroupRegexp = regexp.MustCompile(`voicegroup(\d+)::`)
	keysplitRegexp   = regexp.MustCompile(`KeySplitTable(\d+)`)
)

// Inspect the pret tree in the directory. The song table must exist. The
// other files are optional.
func Inspect(dir string) (Tree, error) {
	tr := Tree{Dir: dir}

	// the first song in the table is number zero
	n, err := countLines(paths.Join(dir, paths.SongTable), songRegexp)
	if err != nil {
		return Tree{}, curated.Errorf(InspectError, err)
	}
	if n > 0 {
		tr.Songs = n - 1
	}

	// voicegroups are either listed in a single file or have one file each
	vgFiles := []string{paths.Join(dir, paths.VoiceGroups)}
	more, _ := filepath.Glob(filepath.Join(paths.Join(dir, paths.VoiceGroupDir), "*.inc"))
	vgFiles = append(vgFiles, more...)
	for _, fn := range vgFiles {
		m, err := highestNumber(fn, voiceGroupRegexp)
		if err != nil && !os.IsNotExist(err) {
			return Tree{}, curated.Errorf(InspectError, err)
		}
		if m > tr.VoiceGroups {
			tr.VoiceGroups = m
		}
	}

	tr.Keysplits, err = highestNumber(paths.Join(dir, paths.KeysplitTables), keysplitRegexp)
	if err != nil && !os.IsNotExist(err) {
		return Tree{}, curated.Errorf(InspectError, err)
	}

	tr.Project = identify(paths.Join(dir, paths.Readme))
	if tr.Project != "" {
		tr.SHA1 = readChecksum(paths.Join(dir, paths.SHA1File(tr.Project)))
	}

	return tr, nil
}

// Baselines returns the baselines for an extraction into the tree.
func (tr Tree) Baselines() m4a.Baselines {
	return m4a.Baselines{
		Songs:       tr.Songs,
		VoiceGroups: tr.VoiceGroups,
		Keysplits:   tr.Keysplits,
	}
}

// MatchesROM returns true if the hash is the checksum of the ROM built by the
// project. Always false if the tree has no checksum file.
func (tr Tree) MatchesROM(hash string) bool {
	return tr.SHA1 != "" && strings.EqualFold(tr.SHA1, hash)
}

func (tr Tree) String() string {
	p := tr.Project
	if p == "" {
		p = "unknown project"
	}
	return fmt.Sprintf("%s: songs %d, voicegroups %d, keysplit tables %d", p, tr.Songs, tr.VoiceGroups, tr.Keysplits)
}

// scan calls the function for each line of the file.
func scan(fn string, f func(line string)) error {
	fh, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer fh.Close()

	s := bufio.NewScanner(fh)
	for s.Scan() {
		f(s.Text())
	}
	return s.Err()
}

func countLines(fn string, re *regexp.Regexp) (int, error) {
	n := 0
	err := scan(fn, func(line string) {
		if re.MatchString(line) {
			n++
		}
	})
	return n, err
}

// highestNumber returns the largest number matched by the first subexpression
// of the regular expression.
func highestNumber(fn string, re *regexp.Regexp) (int, error) {
	highest := 0
	err := scan(fn, func(line string) {
		for _, m := range re.FindAllStringSubmatch(line, -1) {
			if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
				highest = v
			}
		}
	})
	return highest, err
}

// identify the project from the name of the ROM mentioned in the README.
func identify(fn string) string {
	var project string
	_ = scan(fn, func(line string) {
		if project != "" {
			return
		}
		for _, p := range Projects {
			if strings.Contains(line, p+".gba") {
				project = p
				return
			}
		}
	})
	return project
}

// readChecksum returns the first field of the checksum file.
func readChecksum(fn string) string {
	b, err := os.ReadFile(fn)
	if err != nil {
		return ""
	}
	f := strings.Fields(string(b))
	if len(f) == 0 {
		return ""
	}
	return strings.ToLower(f[0])
}
