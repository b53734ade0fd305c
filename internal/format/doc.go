// Package format lays template instantiations out one parameter per line.
//
// Format walks the text once. Every parameter list whose top-level parameter
// count reaches Options.MinParams is opened on its own line, each of its
// parameters goes on a line one indent deeper, and the closing '>' returns to
// the outer indent. Smaller lists stay inline.
//
// Назначение: последняя стадия конвейера tmplfmt, после rewrite.
// Не делает: разбор C++, проверку типов, IO.
package format
