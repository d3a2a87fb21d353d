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

// Package extraction runs a complete extraction from a ROM file to an output
// directory.
//
// The run is configured with a Config. Fatal problems are detected before
// anything is written to the output directory: the ROM cannot be loaded, the
// ROM is not a known game and no song table offset has been given, or the
// pret tree named for the baselines cannot be inspected. Problems with
// individual songs, instruments or samples are logged and do not stop the
// run.
//
// A run happens in the following order:
//
//  1. load and identify the ROM
//  2. walk the song table, decoding every reachable voicegroup
//  3. rewrite references between voicegroups and keysplit tables
//  4. render and write the output files
//  5. extract and convert the samples
//
// The Report returned by Run() summarises what was found and written.
package extraction
