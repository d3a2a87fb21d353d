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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// width of the progress line if the terminal size cannot be found.
const defaultProgressWidth = 60

// progressLine draws a single updating line showing the progress of an
// extraction.
type progressLine struct {
	output io.Writer
	width  int
	last   int
}

// newProgressLine returns nil if the output is not a terminal.
func newProgressLine(output io.Writer) *progressLine {
	f, ok := output.(*os.File)
	if !ok {
		return nil
	}

	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		w = defaultProgressWidth
	}

	return &progressLine{
		output: output,
		width:  w,
		last:   -1,
	}
}

// bar returns the progress line for the percentage, not including the
// carriage return.
func (pl *progressLine) bar(percent int) string {
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	label := fmt.Sprintf(" %3d%%", percent)

	// room for the brackets and the label
	n := pl.width - len(label) - 3
	if n < 10 {
		return strings.TrimSpace(label)
	}

	fill := n * percent / 100
	return fmt.Sprintf("[%s%s]%s", strings.Repeat("#", fill), strings.Repeat(" ", n-fill), label)
}

func (pl *progressLine) update(percent int) {
	if percent == pl.last {
		return
	}
	pl.last = percent
	fmt.Fprintf(pl.output, "\r%s", pl.bar(percent))
}

func (pl *progressLine) end() {
	if pl.last >= 0 {
		fmt.Fprint(pl.output, "\n")
	}
}
