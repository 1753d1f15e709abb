package main

import "portfolio_backend/internal/app"

// Локальный сервер для /.netlify/functions/*
func main() {
	app.RunFunctions()
}
