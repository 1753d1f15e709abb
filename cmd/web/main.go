// @title           Portfolio API
// @version         1.0
// @description     Бэкенд портфолио: навыки, проекты, блог, работы и резюме.
// @BasePath        /api

package main

import "portfolio_backend/internal/app"

func main() {
	app.Run()
}
