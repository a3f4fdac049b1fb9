// This file is part of Platformcore.
//
// Platformcore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Platformcore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Platformcore.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Patterns that are checked for outside of the package that
// creates them should be stored as exported const strings. For example:
//
//	const NegativeGeometry = "lifecycle: negative window geometry (%dx%d)"
//
//	e := curated.Errorf(NegativeGeometry, -1, 600)
//
//	if curated.Is(e, NegativeGeometry) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("fatal: %v", e)
//
//	if curated.Has(f, NegativeGeometry) {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference as being 'expected' and
// 'unexpected' errors, depending on how we choose to handle the result.
//
// The Error() function ensures that the error chain is normalised.
// Specifically, that the chain does not contain duplicate adjacent parts. For
// the purposes of this package we think of chains as being composed of parts
// separated by the sub-string ': ' as suggested on p239 of "The Go
// Programming Language" (Donovan, Kernighan). For example, wrapping the error
// "msgchan: short write" with the pattern "msgchan: %v" results in:
//
//	msgchan: short write
//
// and not:
//
//	msgchan: msgchan: short write
//
// Curated errors also implement Unwrap() so that wrapped errors from the
// standard library (syscall.Errno for example) can be inspected with
// errors.Is().
package curated
