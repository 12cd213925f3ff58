package main

import (
	"flag"
	"log"
	"math"

	"NovelEngine/internal/server"
)

func main() {
	defaults := server.DefaultConfigSources()
	configPath := flag.String("config", defaults.FilePath, "path to YAML server config (missing file is fine)")
	envFile := flag.String("env-file", defaults.EnvFile, "dotenv file exporting NOVEL_* variables")
	addr := flag.String("addr", "", "override address to listen on (e.g., 127.0.0.1:8080)")
	simHz := flag.Float64("sim-hz", math.NaN(), "override simulation tick rate")
	updateHz := flag.Float64("update-hz", math.NaN(), "override websocket state push rate")
	reveal := flag.Float64("reveal-interval", math.NaN(), "override seconds per revealed character")
	name := flag.String("name", "", "override default protagonist name")
	idle := flag.Float64("idle-timeout", math.NaN(), "override seconds before a detached playthrough is dropped")
	assets := flag.String("assets", "", "override directory served under /assets/")
	storyPath := flag.String("story", "", "play chapters from this YAML file instead of the built-in story")
	debug := flag.Bool("debug", false, "log missing character images and ignored input")
	flag.Parse()

	var overrides server.ConfigOverrides
	if *addr != "" {
		overrides.Addr = addr
	}
	if !math.IsNaN(*simHz) {
		val := *simHz
		overrides.SimHz = &val
	}
	if !math.IsNaN(*updateHz) {
		val := *updateHz
		overrides.UpdateRateHz = &val
	}
	if !math.IsNaN(*reveal) {
		val := *reveal
		overrides.RevealIntervalS = &val
	}
	if *name != "" {
		overrides.DefaultPlayerName = name
	}
	if !math.IsNaN(*idle) {
		val := *idle
		overrides.IdleTimeoutS = &val
	}
	if *assets != "" {
		overrides.AssetsDir = assets
	}
	if *storyPath != "" {
		overrides.StoryPath = storyPath
	}
	if *debug {
		overrides.Debug = debug
	}

	cfg, err := server.LoadAppConfig(server.ConfigSources{FilePath: *configPath, EnvFile: *envFile}, overrides)
	if err != nil {
		log.Printf("config: %v (using defaults)", err)
	}
	server.StartApp(cfg)
}
