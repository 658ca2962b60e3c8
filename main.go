package main

import "travel-ticket-api/cmd"

func main() {
	cmd.Execute()
}
