package main

import "solar-sim/internal/cli"

func main() { cli.Execute() }
