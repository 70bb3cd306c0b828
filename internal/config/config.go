package config // package config loads application configuration from environment variables

import (
	"os" // os provides access to environment variables
	"time"

	"github.com/sirupsen/logrus" // logrus reports configuration errors and halts execution
)

// ProdEnv is the APP_ENV value of production deployments.
const ProdEnv = "prod"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The database connection string is never
// compiled in; outside development it must come from the environment.
type Config struct {
	Env                 string        // application environment (dev, test, prod)
	Port                string        // HTTP port to listen on
	MongoURI            string        // MongoDB connection string
	MongoDB             string        // database holding the collections
	MongoConnectTimeout time.Duration // bound on the startup connect + ping
	LogLevel            string        // logrus level name
	LogFormat           string        // "text" or "json"
	CORSOrigins         []string      // allowed origins for browsers
	DatadogAPIKey       string        // ships logs to Datadog when set
	DatadogHost         string        // Datadog log intake host
}

// Load reads configuration values from environment variables and returns a
// Config.  In production MONGO_URI is required and a missing value causes
// the program to exit with a fatal log message.
func Load() Config {
	env := envStr("APP_ENV", "dev")
	uri := os.Getenv("MONGO_URI")
	if env == ProdEnv {
		uri = must("MONGO_URI")
	}
	if uri == "" {
		uri = "mongodb://127.0.0.1:27017"
	}
	return Config{
		Env:                 env,
		Port:                envStr("PORT", "4000"),
		MongoURI:            uri,
		MongoDB:             envStr("MONGO_DB", "tuiter"),
		MongoConnectTimeout: envDur("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		LogLevel:            envStr("LOG_LEVEL", "info"),
		LogFormat:           envStr("LOG_FORMAT", "text"),
		CORSOrigins:         splitList(envStr("CORS_ORIGINS", "*")),
		DatadogAPIKey:       os.Getenv("DATADOG_API_KEY"),
		DatadogHost:         envStr("DATADOG_HOST", "http-intake.logs.datadoghq.com"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}
