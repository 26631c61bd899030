// Package notation implements the inline conversion syntax and the value
// notations it accepts.
//
// A conversion request is written as
//
//	[<value><fromUnit>|<toUnit>]
//
// for example "[2ft|in]", "[1-1/2in|mm]" or "[7-0-1/2ft|m]". The value may be
// a plain decimal, a whole number and a fraction ("1-1/2"), or feet, inches
// and a fraction ("7-0-1/2"). Units use the charset [A-Za-z0-9-/].
//
// Grammar finds complete requests in text and yields them as Tokens through
// an Iterator that owns its cursor. MatchPrefix recognizes a request that is
// still being typed, which drives destination-unit completion.
//
// ParseValue and ToFraction convert between value notations and numbers.
package notation
