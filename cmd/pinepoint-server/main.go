package main

import "github.com/oshokin/pinepoint/cmd/pinepoint-server/cmd"

func main() {
	cmd.Execute()
}
