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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function. Like fmt.Errorf() it takes a pattern and a list of
// values.
//
// The pattern is what makes a curated error recognisable. The Is() function
// checks the pattern of the outermost error and the Has() function checks
// every curated error in the chain:
//
//	e := curated.Errorf("romloader: not a ROM (size %d)", 100)
//	f := curated.Errorf("extraction: %v", e)
//
//	curated.Is(e, "romloader: not a ROM (size %d)")  // true
//	curated.Is(f, "romloader: not a ROM (size %d)")  // false
//	curated.Has(f, "romloader: not a ROM (size %d)") // true
//
// Patterns that callers are expected to test for should be stored as exported
// string constants in the package that creates the error.
//
// The IsAny() function answers whether the error was created by Errorf() at
// all. We use this to distinguish errors we expected (and worded for the user)
// from errors we did not.
//
// The Error() function normalises the message chain. A chain is made of parts
// separated by ": " and adjacent duplicate parts are removed. This means it
// doesn't matter if both a caller and a callee prefix the message with the
// same package name:
//
//	extraction: extraction: unsupported ROM
//
// is printed as:
//
//	extraction: unsupported ROM
//
// Standard errors used as values are reachable with errors.Is() and
// errors.As() through the Unwrap() function.
package curated
