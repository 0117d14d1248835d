package main

import "github.com/llehouerou/vdplayer/internal/cli"

func main() {
	cli.Execute()
}
