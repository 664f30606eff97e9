package main

import "github.com/hoppxi/runa/internal/cmd"

func main() {
	cmd.Execute()
}
