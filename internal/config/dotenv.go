package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv pre-loads .env files into the process environment following the
// dotenv convention.  Files loaded first win because godotenv never
// overrides a variable that is already set, and real environment variables
// win over every file.  Missing files are ignored.
//
//	.env.<APP_ENV>.local  secrets for one environment
//	.env.local            local overrides
//	.env.<APP_ENV>        connection settings per environment
//	.env                  shared defaults
func LoadDotEnv(dir string) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	if dir != "" && dir[len(dir)-1] != '/' {
		dir += "/"
	}
	for _, name := range []string{".env." + env + ".local", ".env.local", ".env." + env, ".env"} {
		_ = godotenv.Load(dir + name)
	}
}
