package main

import (
	"github.com/tkrause/echocalc/cmd"
)

func main() {
	cmd.Execute()
}
