package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/wichananm65/skincare-backend/internal/config"
	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
	"github.com/wichananm65/skincare-backend/internal/seed"
	"github.com/wichananm65/skincare-backend/internal/storage"
)

func main() {
	file := flag.String("file", "", "load products from a .csv or .xlsx file")
	sample := flag.Bool("sample", false, "load the built-in sample catalog")
	writeSample := flag.String("write-sample", "", "write the sample catalog as CSV to this path and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogMode, cfg.LogHashSalt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if *writeSample != "" {
		if err := writeSampleCSV(*writeSample); err != nil {
			log.Fatal("write sample csv", "path", *writeSample, "error", err)
		}
		log.Info("sample catalog written", "path", *writeSample, "products", len(seed.SampleProducts()))
		return
	}

	var products []product.Product
	switch {
	case *file != "":
		var rowErrs []*seed.RowError
		products, rowErrs, err = seed.LoadFile(*file)
		if err != nil {
			log.Fatal("read product file", "path", *file, "error", err)
		}
		for _, re := range rowErrs {
			log.Warn("row skipped", "path", *file, "line", re.Line, "error", re.Err)
		}
	case *sample:
		products = seed.SampleProducts()
	default:
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.Storage(), log)
	if err != nil {
		log.Fatal("storage unavailable", "error", err)
	}
	defer store.Close()

	rep, err := seed.Run(ctx, store, products, log)
	if err != nil {
		log.Fatal("seeding interrupted", "error", err)
	}
	if rep.Failed > 0 {
		log.Sync()
		os.Exit(1)
	}
}

func writeSampleCSV(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := seed.WriteCSV(f, seed.SampleProducts()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
