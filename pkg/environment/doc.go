// Package environment resolves a room name against the known room backends.
//
// Every backend exposes a machine-facing fetch URL that returns the session
// descriptor as JSON and a human-facing display URL for the room page. The
// two differ for backends serving their API at a separate path, so both are
// kept:
//
//	opentokrtc  fetch:   https://opentokrtc.com/room/<room>/info
//	            display: https://opentokrtc.com/room/<room>
//
// Resolution only computes URLs. It performs no I/O.
package environment
