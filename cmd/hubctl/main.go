package main

import "github.com/nfrund/chathub/cmd/hubctl/cmd"

func main() {
	cmd.Execute()
}
