package main

import (
	"flag"
	"math"
	"os"

	"github.com/phanxgames/cadence"
	"github.com/phanxgames/cadence/audio"
	"github.com/phanxgames/cadence/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, json or toml)")
	trackPath := flag.String("track", "", "music file to loop (wav, ogg or mp3)")
	samplePath := flag.String("sample", "", "sound effect played on every pulse")
	debug := flag.Bool("debug", false, "enable scene debug logging")
	flag.Parse()

	cfg, err := cadence.LoadConfig(*configPath)
	if err != nil {
		bootLogger := logging.NewConsole(os.Stderr, "info")
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}
	logger := logging.NewConsole(os.Stderr, cfg.LogLevel)

	host, err := cadence.NewHost(cadence.HostConfig{Config: cfg, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("create host")
	}

	grid := buildGrid(host)

	if *trackPath != "" {
		track, err := host.Audio.NewTrackFromFile(*trackPath)
		if err != nil {
			logger.Error().Err(err).Msg("music disabled")
		} else {
			track.Looping = true
			track.Play()
		}
	}

	var pulse *audio.Sample
	if *samplePath != "" {
		if pulse, err = host.Audio.NewSampleFromFile(*samplePath); err != nil {
			logger.Error().Err(err).Msg("pulse sound disabled")
		}
	}
	schedulePulse(grid, pulse)

	if cfg.Storyboard != "" {
		if err := host.WatchStoryboard(cfg.Storyboard, grid.ChildAt(0)); err != nil {
			logger.Error().Err(err).Str("path", cfg.Storyboard).Msg("storyboard disabled")
		}
	}

	if err := cadence.Run(host); err != nil {
		logger.Fatal().Err(err).Msg("run")
	}
}

const (
	gridCols = 8
	gridRows = 5
	cellSize = 48
	cellGap  = 16
)

// buildGrid lays out a grid of boxes that fade in one after another.
func buildGrid(host *cadence.Host) *cadence.Drawable {
	grid := cadence.NewContainer("grid")
	w := float64(gridCols*(cellSize+cellGap) - cellGap)
	h := float64(gridRows*(cellSize+cellGap) - cellGap)
	grid.SetPosition(cadence.Vec2{
		X: (float64(host.Config.Window.Width) - w) / 2,
		Y: (float64(host.Config.Window.Height) - h) / 2,
	})
	host.Scene.Root().AddChild(grid)
	host.Scene.ClearColor = cadence.Color{R: 0.08, G: 0.08, B: 0.1, A: 1}

	for row := 0; row < gridRows; row++ {
		for col := 0; col < gridCols; col++ {
			box := cadence.NewBox("", cadence.Vec2{X: cellSize, Y: cellSize})
			box.SetOrigin(cadence.Vec2{X: 0.5, Y: 0.5})
			box.SetPosition(cadence.Vec2{
				X: float64(col*(cellSize+cellGap)) + cellSize/2,
				Y: float64(row*(cellSize+cellGap)) + cellSize/2,
			})
			box.Color = cadence.Color{
				R: float64(col) / gridCols,
				G: 0.5,
				B: float64(row) / gridRows,
				A: 1,
			}
			box.Alpha = 0
			grid.AddChild(box)

			delay := float64(row*gridCols+col) * 40
			box.Delay(delay).
				FadeIn(300, cadence.EasingOutQuad).
				ScaleTo(cadence.Vec2{X: 1.2, Y: 1.2}, 300, cadence.EasingOutBack).
				Then().
				ScaleTo(cadence.Vec2{X: 1, Y: 1}, 200, cadence.EasingInOutSine)
		}
	}
	return grid
}

// schedulePulse spins the grid's boxes in a wave every two seconds.
func schedulePulse(grid *cadence.Drawable, sound *audio.Sample) {
	var pulse func()
	pulse = func() {
		if sound != nil {
			sound.Play()
		}
		for i, box := range grid.Children() {
			box.Delay(float64(i)*20).
				RotateTo(box.Rotation+math.Pi/2, 400, cadence.EasingInOutCubic).
				FlashColor(cadence.ColorWhite, 400, cadence.EasingOutQuad)
		}
		grid.Delay(2000).Schedule(pulse)
	}
	grid.Delay(2000).Schedule(pulse)
}
