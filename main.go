package main

import "github.com/jsphweid/scoreroll/cmd"

func main() {
	cmd.Execute()
}
