package main

import "github.com/masmgr/gitgauge-go/cmd"

func main() {
	cmd.Run()
}
