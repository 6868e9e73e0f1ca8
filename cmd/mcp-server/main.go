// Command mcp-server exposes the goalgebra tools to agent frameworks.
//
// Usage:
//
//	mcp-server --config goalgebra.yaml     serve POST /tool, GET /schema, GET /health
//	echo '{"tool":"..."}' | mcp-server call
//	mcp-server schema
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
