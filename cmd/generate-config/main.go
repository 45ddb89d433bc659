package main

import (
	"os"

	"github.com/sillypantscoder/falling/internal/config"
	"gopkg.in/yaml.v2"
)

func main() {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()

	if err := enc.Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}
}
