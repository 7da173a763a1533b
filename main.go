package main

import "car-dashboard/cmd"

func main() {
	cmd.Execute()
}
