package config

import "os"

func ServerAddress() string {
	return os.Getenv("SERVER_ADDRESS")
}
