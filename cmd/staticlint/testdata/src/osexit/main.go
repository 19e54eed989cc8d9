package main

import (
	"os"
	sys "os"
)

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()
	os.Exit(1)  // want "avoid direct os.Exit call in main function of main package"
	sys.Exit(1) // want "avoid direct os.Exit call in main function of main package"
	go func() {
		os.Exit(3) // want "avoid direct os.Exit call in main function of main package"
	}()
}
