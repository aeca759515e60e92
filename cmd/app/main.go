// @title VelvetPour API
// @version 1.0.0
// @description API коктейльной машины: каталог, приготовление, управление клапанами, статус.
// @host localhost:5000
// @BasePath /api/v1
package main

import "github.com/iwtcode/velvetpour/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
