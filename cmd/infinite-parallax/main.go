package main

import (
	"flag"
	"os"
	"path/filepath"

	"infinite-parallax/internal/camera"
	"infinite-parallax/internal/convert"
	"infinite-parallax/internal/scene"
	"infinite-parallax/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	scenePath := flag.String("scene", "parallax.json", "Path to the parallax scene file")
	assetsPath := flag.String("assets", "", "Extra directory to search for layer images")
	pkgPath := flag.String("pkg", "", "Optional .pkg archive holding the scene and its images")
	extractDir := flag.String("extract", "tmp", "Directory the -pkg archive is extracted to")
	texOut := flag.String("tex-out", "", "Directory for PNGs converted from .tex images (default: next to the source)")
	cameraMode := flag.String("camera", "", "Camera input: keys, pointer or auto (overrides the scene)")
	speed := flag.Float64("speed", 0, "Camera speed in scene units per second (overrides the scene)")
	scalingMode := flag.String("scaling", "fill", "Window scaling: fill or fit")
	fps := flag.Int("fps", 60, "Target frame rate")
	width := flag.Int("width", 0, "Window width (default: scene width)")
	height := flag.Int("height", 0, "Window height (default: scene height)")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn or error")
	debugFlag := flag.Bool("debug", false, "Enable debug logging and the tile overlay")
	raylibInfo := flag.Bool("raylib-info", false, "Show raylib info messages")
	flag.Parse()

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}
	utils.CurrentLevel = level
	utils.DebugMode = *debugFlag
	utils.ShowDebugUI = *debugFlag
	utils.ShowRaylibInfo = *raylibInfo
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
	}

	convert.TextureOutDir = *texOut

	if *pkgPath != "" {
		if _, err := os.Stat(*extractDir); os.IsNotExist(err) {
			utils.Info("Unpacking %s...", *pkgPath)
			if _, err := convert.ExtractPkg(*pkgPath, *extractDir, convert.LayerAssets); err != nil {
				utils.Error("Failed to extract pkg: %v", err)
				os.Exit(1)
			}
		}
		utils.AddAssetRoot(*extractDir)
		convert.BulkConvertTextures(*extractDir, *texOut)
	}

	resolvedScene := *scenePath
	if _, err := os.Stat(resolvedScene); err != nil {
		resolvedScene = utils.ResolveAssetPath(*scenePath)
	}

	s, err := scene.Load(resolvedScene)
	if err != nil {
		utils.Error("Failed to load scene: %v", err)
		os.Exit(1)
	}
	utils.Info("Scene loaded from %s: %d layers, %d tiles per layer", resolvedScene, len(s.Layers), s.Repetitions+1)

	utils.AddAssetRoot(s.Dir)
	utils.AddAssetRoot(*assetsPath)
	utils.AddAssetRoot("assets")

	if *cameraMode != "" {
		if _, err := camera.ParseMode(*cameraMode); err != nil {
			utils.Error("%v", err)
			os.Exit(2)
		}
		s.Camera.Mode = *cameraMode
	}
	if *speed > 0 {
		s.Camera.Speed = *speed
	}
	s.CheckCoverage()

	windowWidth, windowHeight := *width, *height
	if windowWidth <= 0 || windowHeight <= 0 {
		windowWidth, windowHeight = s.Resolution.Width, s.Resolution.Height
	}

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(windowWidth), int32(windowHeight), "Infinite Parallax - "+filepath.Base(resolvedScene))
	defer rl.CloseWindow()

	window, err := NewWindow(s, *scalingMode)
	if err != nil {
		utils.Error("Failed to build parallax: %v", err)
		rl.CloseWindow()
		os.Exit(1)
	}
	defer window.Close()

	utils.Info("Starting render loop...")
	window.Run(int32(*fps))
}
