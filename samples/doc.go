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

// Package samples extracts the sampled instrument data referenced by M4A
// voicegroups and converts it to files for the sound directories of a pret
// tree.
//
// There are two kinds of sample. A direct sound sample is a 16 byte header
// followed by signed 8-bit PCM data. The header holds the pitch of the sample
// (in 1/1024ths of a Hz) at offset 0x04 and the number of PCM bytes at offset
// 0x0c. A programmable wave sample is always 16 bytes of packed 4-bit
// waveform.
//
// Extraction happens in two steps. The raw bytes of each sample are written
// to a temporary directory that lives for the length of the run. The raw file
// is then handed to a Converter which writes the file that the pret tree
// expects. Converters are selected by name with NewConverter():
//
//	wav	direct sound samples become 8-bit mono WAV files (default)
//	raw	the raw bytes are copied unchanged
//	exec	an external program is run for each direct sound sample
//
// Programmable wave samples are always copied unchanged, whatever the
// converter.
package samples
