package main

import "github.com/luketpeterson/n-best/cmd"

func main() {
	cmd.Execute()
}
