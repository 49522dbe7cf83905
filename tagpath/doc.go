// Package tagpath addresses values inside a tag tree with dotted path expressions.
//
// A path is a sequence of compound keys separated by '.', each optionally followed by
// list indexes:
//
//	Data.Player.inventory[0].tag.display.Name
//	"minecraft:stats".used
//	sections[2][0]
//
// Keys containing '.', '[', ']' or '"' are written in double quotes.
//
// Get returns distinct errors for a missing key (errs.ErrPathNotFound), an index past
// the end (errs.ErrIndexOutOfRange, which also matches ErrPathNotFound) and a segment
// that steps into the wrong kind of tag (errs.ErrTypeMismatch). Lookup and the typed
// accessors fold all of these into a false ok result.
//
// Set, Delete and ModifyListItem mutate the tree in place and never create missing
// intermediate containers.
package tagpath
