package main

import "github.com/koscakluka/fable-core/cmd/fable-chat/cmd"

func main() {
	cmd.Execute()
}
