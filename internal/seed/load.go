// Package seed fills the catalog from the built-in sample list or from a
// CSV/XLSX export.
package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/wichananm65/skincare-backend/internal/product"
)

// Columns is the header order WriteCSV emits and the loaders understand.
var Columns = []string{"name", "brand", "category", "skin_type", "concerns", "price", "rating", "description", "ingredients", "purchase_link", "image_url"}

var ErrUnsupportedFormat = errors.New("unsupported product file format")

// RowError is a row that could not be turned into a product. Line numbers
// count the header as line 1.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// LoadFile reads products from a .csv or .xlsx file. Rows that fail to parse
// are skipped and reported in the returned RowErrors.
func LoadFile(path string) ([]product.Product, []*RowError, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return LoadCSV(f)
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		return LoadXLSX(f)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

func LoadCSV(r io.Reader) ([]product.Product, []*RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	products, rowErrs := fromRows(rows)
	return products, rowErrs, nil
}

// LoadXLSX reads the first sheet of a workbook.
func LoadXLSX(r io.Reader) ([]product.Product, []*RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	products, rowErrs := fromRows(rows)
	return products, rowErrs, nil
}

// fromRows maps rows by header name. Missing cells become empty strings and
// blank numbers become zero.
func fromRows(rows [][]string) ([]product.Product, []*RowError) {
	if len(rows) == 0 {
		return nil, nil
	}
	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		out     []product.Product
		rowErrs []*RowError
	)
	for n, row := range rows[1:] {
		line := n + 2
		if isBlank(row) {
			continue
		}
		price, err := parseNumber(cell(row, "price"))
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Err: fmt.Errorf("price: %w", err)})
			continue
		}
		rating, err := parseNumber(cell(row, "rating"))
		if err != nil {
			rowErrs = append(rowErrs, &RowError{Line: line, Err: fmt.Errorf("rating: %w", err)})
			continue
		}
		out = append(out, product.Product{
			Name:         cell(row, "name"),
			Brand:        cell(row, "brand"),
			Category:     cell(row, "category"),
			SkinType:     cell(row, "skin_type"),
			Concerns:     cell(row, "concerns"),
			Price:        price,
			Rating:       rating,
			Description:  cell(row, "description"),
			Ingredients:  cell(row, "ingredients"),
			PurchaseLink: cell(row, "purchase_link"),
			ImageURL:     cell(row, "image_url"),
		})
	}
	return out, rowErrs
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteCSV writes products in the layout LoadCSV reads back.
func WriteCSV(w io.Writer, products []product.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, p := range products {
		if err := cw.Write([]string{
			p.Name,
			p.Brand,
			p.Category,
			p.SkinType,
			p.Concerns,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.FormatFloat(p.Rating, 'f', -1, 64),
			p.Description,
			p.Ingredients,
			p.PurchaseLink,
			p.ImageURL,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
