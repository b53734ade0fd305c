// Package scan finds the structure of generic argument lists inside plain
// text: matching angle brackets, top-level argument boundaries and parameter
// counts.
//
// Назначение: посимвольный разбор скобок для rewrite и format.
// Не делает: разбор грамматики C++, проверку типов, восстановление после ошибок.
//
// All functions take a string and byte offsets into it and never modify the
// input. Quoted literals ("..." and '...', backslash escapes the next byte)
// are opaque: brackets and commas inside them are ignored.
package scan
