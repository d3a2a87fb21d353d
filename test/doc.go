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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a failure and allow the test to continue.
// The Demand*() functions stop the test. Use the Demand*() variety when later
// tests depend on the value being correct, for example, testing that the
// length of a slice is correct before indexing into it.
//
// Success and failure are decided by the type of the value:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// The nil type is treated as success because that is how Go indicates the
// absence of an error.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output that is to be compared with an expected string.
package test
