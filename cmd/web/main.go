package main

import "github.com/alikamatu/artisan-app-sub000/internal/app"

func main() {
	app.Run()
}
