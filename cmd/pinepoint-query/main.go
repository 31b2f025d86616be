package main

import "github.com/oshokin/pinepoint/cmd/pinepoint-query/cmd"

func main() {
	cmd.Execute()
}
