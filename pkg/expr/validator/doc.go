// Package validator checks a parsed expression before it is printed.
//
// The parser accepts any identifier as a function or constant name; the
// validator reports every name outside the known-name table, every call with
// an unsupported argument count and, when a set of declared variables is
// configured, every variable outside that set. All problems are collected
// into a single ErrorList rather than stopping at the first.
package validator
