package main

import "github.com/mselser95/polymarket-agent/cmd"

func main() {
	cmd.Execute()
}
