package main

import "github.com/oshokin/pinepoint/cmd/pinepoint/cmd"

func main() {
	cmd.Execute()
}
