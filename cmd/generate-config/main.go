package main

import (
	"os"
	"setmatch-server/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// prints the default configuration, e.g. go run ./cmd/generate-config > config.yaml
func main() {
	if err := yaml.NewEncoder(os.Stdout).Encode(config.DefaultConfig()); err != nil {
		logrus.WithError(err).Fatal("could not encode the default configuration")
	}
}
