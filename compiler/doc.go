/*

Process of compilation

Program Text ->
	lexer ->
Token Stream (token), ends with one EOF ->
	parse ->
Node Arena (ast) + root key + top-level keys

Nodes reference their operands by ast.Key, never by pointer.
A key is valid only against the arena that issued it.

*/
package compiler
