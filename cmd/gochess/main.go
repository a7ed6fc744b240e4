// gochess speaks UCI over stdio.
/*
gochess is free software: you can redistribute it and/or modify it under the terms of the
GNU General Public License as published by the Free Software Foundation, either version 3
of the License, or (at your option) any later version.
This program is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
See the GNU General Public License for more details.
*/
package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/ngrigoriev/gochess/uci"
)

var versionName = "dev"

func main() {
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Println("gochess",
		"VersionName", versionName,
		"RuntimeVersion", runtime.Version(),
		"GOARCH", runtime.GOARCH,
		"GOOS", runtime.GOOS)

	protocol := uci.NewProtocol(os.Stdout)
	protocol.Run(os.Stdin)
}
