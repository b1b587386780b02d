package main

import "github.com/rub1cc/barcc/cmd"

func main() {
	cmd.Execute()
}
