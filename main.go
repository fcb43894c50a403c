package main

import "github.com/KaramelBytes/dsamod-cli/cmd"

func main() {
	cmd.Execute()
}
