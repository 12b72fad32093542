// Command flowdemo draws scenario files through the platform view
// compositor and prints what a host would receive for every frame.
package main

func main() {
	Execute()
}
