package main

//go:generate swag init -g cmd/dashboard/main.go -o docs

// @title           Folioboard API
// @version         0.1.0
// @description     Portfolio dashboard: holdings and transaction tables, charts, dividends, notifications and public sharing.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
