package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type ENV struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	Port       string
	UploadDir  string
	APP_ENV    string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		Port:       os.Getenv("APP_PORT"),
		UploadDir:  os.Getenv("UPLOAD_DIR"),
		APP_ENV:    os.Getenv("APP_ENV"),
	}

	if env.UploadDir == "" {
		env.UploadDir = "storage"
	}

	return env
}

var LoadENV = LoadEnv()
