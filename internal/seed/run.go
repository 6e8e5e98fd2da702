package seed

import (
	"context"

	"github.com/wichananm65/skincare-backend/internal/platform/logger"
	"github.com/wichananm65/skincare-backend/internal/product"
)

// Inserter is the write half of the product repository.
type Inserter interface {
	InsertProduct(ctx context.Context, p product.Product) error
}

type Report struct {
	Inserted int
	Invalid  int
	Failed   int
}

// Run inserts products one by one. Invalid products and failed inserts are
// logged and counted; the run continues past them. Only a canceled context
// stops it early.
func Run(ctx context.Context, dst Inserter, products []product.Product, log *logger.Logger) (Report, error) {
	if log == nil {
		log = logger.NewNop()
	}
	var rep Report
	total := len(products)
	for i, p := range products {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		if verr := p.Validate(); verr != nil {
			rep.Invalid++
			log.Warn("product skipped", "position", i+1, "total", total, "name", p.Name, "error", verr.Error())
			continue
		}
		if err := dst.InsertProduct(ctx, p); err != nil {
			rep.Failed++
			log.Error("product upload failed", "position", i+1, "total", total, "name", p.Name, "error", err)
			continue
		}
		rep.Inserted++
		log.Debug("product uploaded", "position", i+1, "total", total, "name", p.Name)
	}
	log.Info("product upload complete", "inserted", rep.Inserted, "invalid", rep.Invalid, "failed", rep.Failed)
	return rep, nil
}
