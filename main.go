package main

import "vidurl/cmd"

func main() {
	cmd.Execute()
}
