// Package substitute resolves <%= identifier %> placeholders in templated
// strings against a types.Context.
//
// The grammar has exactly one construct. An opening delimiter "<%=" is
// followed by an identifier and a closing delimiter "%>"; whitespace around
// the identifier is ignored. Everything outside delimiters is copied
// verbatim, including a stray "%>" or EJS forms such as "<% %>" that are not
// recognized.
//
//	PORT=<%= port %>        -> PORT=8080
//	<%= name %>_service.py  -> auth_service.py
//
// Strings render verbatim, integers in base 10 and booleans as true/false.
// A sequence value is rejected unless the caller sets
// Options.ExpandSequences, in which case the items are joined with
// Options.Separator.
//
// Resolution is pure: the same template and Context always yield the same
// string or the same error.
package substitute
