package main

import "github.com/aweris/svo/cmd/svo/cmd"

func main() {
	cmd.Execute()
}
