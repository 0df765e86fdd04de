package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Tally Clank API
// @version         0.1.0
// @description     Token dashboard backend: launch platform gateway, DEX analytics, token sync, chat.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
