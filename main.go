package main

import "github.com/Tarunchintakunta/Zero-trust-simulator/cmd"

func main() {
	cmd.Execute()
}
