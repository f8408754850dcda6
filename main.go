package main

import (
	"gastos/setup"

	"github.com/gorilla/mux"
)

func main() {
	setup.MustInitDb()

	r := mux.NewRouter()
	setup.StartServer(r)
}
