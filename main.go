package main

import "github.com/maauso/blockcut/cmd"

func main() {
	cmd.Execute()
}
