package config

type Config struct {
	DatabaseURL  string
	RedisURL     string
	RenderAPIKey string
	JWTSecret    string
	Environment  string
}
