package main

import "github.com/kamal-hamza/fetch-tool/cmd"

func main() {
	cmd.Execute()
}
