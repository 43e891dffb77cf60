package main

import "github.com/YuminosukeSato/autoprice/cmd"

func main() {
	cmd.Execute()
}
