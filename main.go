package main

import "github.com/Rakhulsr/cristobal/app/cmd"

func main() {
	cmd.RunCli()
}
