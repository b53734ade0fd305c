// Package rewrite shortens verbose template spellings before formatting.
//
// A Table holds named patterns. The Engine walks the text, and wherever a
// pattern name is immediately followed by a balanced parameter list it hands
// the split arguments to the pattern's Handler. Passes repeat until the text
// stops changing, so nested instantiations are rewritten inside-out over
// several passes.
package rewrite
