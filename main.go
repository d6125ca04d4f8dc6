package main

import "github.com/stackslip/stackslip/cmd"

func main() {
	cmd.Execute()
}
