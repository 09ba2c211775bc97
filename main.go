package main

import (
	"log"
	"net/http"
	"os"

	"github.com/Rakhulsr/go-catalog-api/app/cmd"
	"github.com/Rakhulsr/go-catalog-api/app/configs"
	"github.com/Rakhulsr/go-catalog-api/app/routes"
	"github.com/Rakhulsr/go-catalog-api/app/storage"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	files := storage.NewDiskStore(env.UploadDir)
	router := routes.NewRouter(db, files)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
