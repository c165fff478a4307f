package main

import "github.com/OpenTraceLab/hwdefgen/cmd/hwdefgen/cmd"

func main() {
	cmd.Execute()
}
