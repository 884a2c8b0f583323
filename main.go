package main

import "github.com/a3health/a3diet/cmd/a3diet"

func main() {
	a3diet.Execute()
}
