package main

import "material-manager/cmd"

func main() {
	cmd.Execute()
}
