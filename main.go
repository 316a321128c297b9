package main

import "github.com/gaurav-prasanna/tabpipe/cmd"

func main() {
	cmd.Execute()
}
