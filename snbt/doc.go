// Package snbt converts tags to and from SNBT, the text form of NBT used in commands
// and data packs:
//
//	{Name: "Steve", Health: 20.0f, Pos: [1.5d, 64.0d, -3.25d], Inventory: [{id: "minecraft:stone", Count: 64b}]}
//
// Numbers carry a one-letter kind suffix (b, s, L, f, d; none for Int), typed arrays
// are written [B; ...], [I; ...] and [L; ...], and strings are quoted unless the bare
// token would read back as the same string.
package snbt
