package noenv

import "os"

func proxy() string {
	return os.Getenv("YT_PROXY_URL") // want "environment must be read through the config package"
}

func cookies() (string, bool) {
	return os.LookupEnv("YT_COOKIES_FILE") // want "environment must be read through the config package"
}

func all() []string {
	return os.Environ() // want "environment must be read through the config package"
}

func hostname() (string, error) {
	return os.Hostname()
}
