// Package script implements a small line-oriented command language that
// drives a single boxed value. It exists to exercise the box contract from
// files and from the interactive inspector.
//
//	# comments run to end of line
//	set int 42
//	get float          # warns: the value holds an int
//	set string "héllo"
//	set custom 01 02 ff
//	resize 8
//	poke 4 2a
//	peek 0 8
//	print
//	debug
//	option warn-as-error on
//
// Parsing reports every problem through a diag.Reporter with a file:line:col
// position and keeps going; statements with errors are dropped from the
// Program. The Runner executes a Program against one box.Value.
package script
