// Package speech prepares lesson text for speech output and dispatches it
// to whatever synthesis capability the host offers.
//
// Synthesis and recognition are optional. When a capability is missing or
// fails, the dispatcher returns a [Notice] for the user instead of an
// error, so callers can keep going.
package speech
