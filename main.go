// Public domain.

package main

import "github.com/soniakeys/lccorr/internal/lcprog"

func main() {
	lcprog.Main()
}
