package main

import "github.com/dbsmedya/discbot/cmd/discbot/cmd"

func main() {
	cmd.Execute()
}
