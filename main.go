package main

import (
	"github.com/CardHaven/CardHaven-Backend/api"
)

var envPath string = "."

func main() {
	server := api.NewServer(envPath)
	server.Start()
}
