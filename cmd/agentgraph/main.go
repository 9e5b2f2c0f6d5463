package main

import "github.com/agentguard/agentgraph/cmd/agentgraph/commands"

func main() {
	commands.Execute()
}
