package main

import (
	"os"

	"github.com/ngrigoriev/gochess/uci"
)

func main() {
	protocol := uci.NewProtocol(os.Stdout)
	protocol.Run(os.Stdin)
}
