package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	sceneFile := flag.String("scene", "scene.yaml", "scene spec in prefabs/")
	player := flag.String("player", "", "character to control first (defaults to the scene's player)")
	multi := flag.Bool("multi", false, "every character reads the keyboard")
	watch := flag.Bool("watch", false, "reload prefabs when files under prefabs/ change")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("menagerie")

	game, err := NewGame(Options{
		Scene:  *sceneFile,
		Player: *player,
		Multi:  *multi,
		Watch:  *watch,
		Debug:  *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	err = ebiten.RunGame(game)
	game.Close()
	if err != nil {
		log.Fatal(err)
	}
}
