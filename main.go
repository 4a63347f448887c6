package main

import "github.com/TFMV/trustgraph/cmd"

func main() {
	cmd.Execute()
}
