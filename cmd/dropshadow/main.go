package main

import "github.com/MeKo-Tech/dropshadow/internal/cmd"

func main() {
	cmd.Execute()
}
