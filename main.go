package main

import "github.com/notargets/laplace2d/cmd"

func main() {
	cmd.Execute()
}
