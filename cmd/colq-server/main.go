package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"colq/pkg/engine"
	"colq/pkg/engine/datasource"
	"colq/pkg/service"
)

func main() {
	listen := flag.String("listen", ":8080", "address to serve HTTP on")
	dataDir := flag.String("data", "./data", "directory with .colq table files")
	batchSize := flag.Int("batch-size", 1024, "rows per batch when scanning files")
	flag.Parse()

	catalog := engine.NewCatalog()
	if err := registerTables(catalog, *dataDir, *batchSize); err != nil {
		log.Fatalf("loading tables: %v", err)
	}
	log.Printf("serving tables %v on %s", catalog.Names(), *listen)

	server := service.NewServer(catalog)
	if err := http.ListenAndServe(*listen, server.Router()); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

// registerTables maps every .colq file in dir to a table named after the
// file, without the extension.
func registerTables(catalog *engine.Catalog, dir string, batchSize int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".colq") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		source, err := datasource.OpenFileSource(path, batchSize)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(entry.Name(), ".colq")
		if err := catalog.Register(name, source); err != nil {
			return err
		}
		log.Printf("registered table %q from %s", name, path)
	}
	return nil
}
