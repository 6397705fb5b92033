package main

import "github.com/alialif/JoinUp-Event-Management/cmd/server/cmd"

func main() {
	cmd.Execute()
}
