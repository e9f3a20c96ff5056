package main

import "adpace/cmd"

func main() {
	cmd.Execute()
}
