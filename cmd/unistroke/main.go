package main

import "github.com/ThatOtherAndrew/Unistroke/cmd"

func main() {
	cmd.Execute()
}
