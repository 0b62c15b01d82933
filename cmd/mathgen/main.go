// Mathgen turns hand-written math expressions into source code.
//
// It reads an expression such as "2x^2 + sin(y)/3", resolves implicit
// multiplication and function calls, and prints equivalent code for a
// target language.
//
// Usage:
//
//	# Generate Python from stdin
//	echo "2x^2 + sqrt(y)" | mathgen python
//
//	# Declare variables that multiply instead of being called
//	echo "a(b+1)" | mathgen javascript --var a
//
//	# Inspect the parsed tree
//	mathgen parse --format yaml "y = 2x"
//
//	# Check a directory of expression files
//	mathgen check --dir expressions/
//
//	# Regenerate code whenever a file changes
//	mathgen watch --file area.math --lang go --out area.go
//
//	# Serve the HTTP API
//	mathgen serve --config mathgen.yaml
package main

import "os"

func main() {
	os.Exit(Execute())
}
