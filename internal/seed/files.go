package seed

import (
	"embed"
	"io/fs"
)

//go:embed data
var embedded embed.FS

// Files returns the datasets shipped with the binary, rooted at the module directories.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}
