package main

import "github.com/jsphweid/gabc2ly/cmd"

func main() {
	cmd.Execute()
}
