package main

import "github.com/josephlewis42/minish/cmd"

func main() {
	cmd.Execute()
}
