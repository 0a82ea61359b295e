package main

import "github.com/Rithvik-katakamm/llama-utils/internal/commands"

func main() {
	commands.Execute()
}
