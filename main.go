package main

import "github.com/Tiliavir/babylog/cmd"

func main() {
	cmd.Execute()
}
