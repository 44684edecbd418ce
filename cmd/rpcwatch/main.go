// rpcwatch is a safety gate between AI agents and blockchain JSON-RPC
// endpoints. Run "rpcwatch mcp" to serve gated tools over stdio.
package main

import "github.com/ppiankov/rpcwatch/internal/cli"

func main() {
	cli.Execute()
}
