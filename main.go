// Public domain.

package main

import "github.com/soniakeys/natal/internal/natalprog"

func main() {
	natalprog.Main()
}
