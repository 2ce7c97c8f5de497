// Command orrery runs the orbital simulation in a window or headless.
package main

func main() {
	Execute()
}
