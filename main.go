package main

import "github.com/sanghyxuk/shieldhub-cli/cmd"

func main() {
	cmd.Execute()
}
