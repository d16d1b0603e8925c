// Command cachesim runs a random workload through a simulated cache.
package main

import "github.com/sarchlab/rripcache/cmd/cachesim/cmd"

func main() {
	cmd.Execute()
}
