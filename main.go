// Command walkthrough steps through the stages of an AI assistant's pipeline
// for a sample prompt, with optional security annotations per stage.
package main

import "walkthrough/internal/cli"

func main() {
	cli.Execute()
}
