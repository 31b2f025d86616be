package main

import "github.com/oshokin/pinepoint/cmd/pinepoint-render/cmd"

func main() {
	cmd.Execute()
}
