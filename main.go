package main

import "github.com/thereayou/courier/cmd/server"

func main() {
	server.NewServer().Run()
}
